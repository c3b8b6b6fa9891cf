package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spmaudit/pkg/audit"
	"github.com/matzehuels/spmaudit/pkg/report"
	"github.com/matzehuels/spmaudit/pkg/scan"
)

func newGraphCmd() *cobra.Command {
	var (
		format     string
		output     string
		transitive bool
	)

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Render the dependency graph as DOT or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(pathArg(args))
			if err != nil {
				return err
			}
			return runGraph(cmd.Context(), root, format, output, transitive)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&transitive, "transitive", "t", false, "include transitive lockfile dependencies")
	return cmd
}

func runGraph(ctx context.Context, root, format, output string, transitive bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backing, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer backing.Close()

	scanner := scan.New(scan.Options{IncludeTransitive: transitive, Logf: logger.Debugf})
	records := scanner.Scan(root)
	if len(records) == 0 {
		return fmt.Errorf("no Swift package dependencies found under %s", root)
	}

	auditor := audit.New(newGitHubClient(cfg, backing), audit.Options{
		CheckoutsDir: filepath.Join(root, ".build", "checkouts"),
		Logf:         logger.Debugf,
	})
	groups := audit.Aggregate(auditor.Run(ctx, records))
	rep := report.FromResults(root, groups)

	var data []byte
	switch format {
	case "dot":
		data = []byte(rep.ToDOT())
	case "svg":
		data, err = report.RenderSVG(ctx, rep.ToDOT())
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want dot or svg)", format)
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote %s graph", format)
	printFile(output)
	return nil
}
