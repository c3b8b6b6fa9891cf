package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spmaudit/pkg/audit"
	"github.com/matzehuels/spmaudit/pkg/scan"
	"github.com/matzehuels/spmaudit/pkg/update"
)

func newUpdateCmd() *cobra.Command {
	var (
		targetVersion string
		updateAll     bool
		dir           string
	)

	cmd := &cobra.Command{
		Use:   "update [all|package]",
		Short: "Update a dependency's version requirement in its manifest",
		Long: `Update rewrites the version requirement of a dependency in the
Package.swift manifest that declares it. "update all" applies every
available update; without arguments it audits the project and offers an
interactive picker of outdated dependencies.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			all := updateAll || (len(args) == 1 && args[0] == "all")
			switch {
			case all:
				if targetVersion != "" {
					return fmt.Errorf("updating all dependencies does not take --to")
				}
				return runUpdateAll(cmd.Context(), root)
			case len(args) == 1:
				return runUpdateOne(cmd.Context(), root, args[0], targetVersion)
			default:
				return runUpdatePicker(cmd.Context(), root)
			}
		},
	}

	cmd.Flags().StringVar(&targetVersion, "to", "", "target version (default: latest stable)")
	cmd.Flags().BoolVar(&updateAll, "all", false, "update every outdated dependency")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "project root to scan")
	return cmd
}

func newUpdateApplier(ctx context.Context) (*update.Applier, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	backing, err := openCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := loggerFromContext(ctx)
	scanner := scan.New(scan.Options{Logf: logger.Debugf})
	applier := update.NewApplier(scanner, newGitHubClient(cfg, backing))
	return applier, func() { _ = backing.Close() }, nil
}

func runUpdateOne(ctx context.Context, root, name, targetVersion string) error {
	applier, done, err := newUpdateApplier(ctx)
	if err != nil {
		return err
	}
	defer done()

	change, err := applier.Apply(ctx, root, name, targetVersion)
	if err != nil {
		return err
	}
	reportChange(change)
	return nil
}

func runUpdateAll(ctx context.Context, root string) error {
	outdated, err := collectOutdated(ctx, root)
	if err != nil {
		return err
	}
	if len(outdated) == 0 {
		printSuccess("Everything is up to date")
		return nil
	}

	applier, done, err := newUpdateApplier(ctx)
	if err != nil {
		return err
	}
	defer done()

	var failed int
	for _, r := range outdated {
		change, err := applier.Apply(ctx, root, r.Record.Name, "")
		if err != nil {
			failed++
			printError("%s: %v", r.Record.Name, err)
			continue
		}
		reportChange(change)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d updates failed", failed, len(outdated))
	}
	return nil
}

func runUpdatePicker(ctx context.Context, root string) error {
	outdated, err := collectOutdated(ctx, root)
	if err != nil {
		return err
	}
	if len(outdated) == 0 {
		printSuccess("Everything is up to date")
		return nil
	}

	model := newUpdatePickerModel(outdated)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	picked, ok := final.(updatePickerModel)
	if !ok || picked.selected == nil {
		printInfo("Nothing selected")
		return nil
	}

	return runUpdateOne(ctx, root, picked.selected.Record.Name, "")
}

// collectOutdated runs a non-transitive audit and keeps only the records
// with an available update.
func collectOutdated(ctx context.Context, root string) ([]audit.Result, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backing, err := openCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer backing.Close()

	scanner := scan.New(scan.Options{Logf: logger.Debugf})
	records := scanner.Scan(root)
	if len(records) == 0 {
		return nil, nil
	}

	auditor := audit.New(newGitHubClient(cfg, backing), audit.Options{
		CheckoutsDir: filepath.Join(root, ".build", "checkouts"),
		Logf:         logger.Debugf,
	})
	return audit.Outdated(auditor.Run(ctx, records)), nil
}

func reportChange(change *update.Change) {
	printSuccess("%s: %s %s %s", change.Record.Name, change.From, iconArrow, change.To)
	printFile(change.Record.SourceFile)
	if change.Downgrade {
		printWarning("%s %s is older than the declared %s", change.Record.Name, change.To, change.From)
	}
}
