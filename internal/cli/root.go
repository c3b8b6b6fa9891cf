package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spmaudit/pkg/buildinfo"
)

// Execute runs the spmaudit CLI. The root command itself performs an audit
// of the current directory (or the given path); subcommands cover manifest
// updates, graph rendering, the HTTP report server, and cache management.
//
// Logging goes to stderr at info level, or debug with --verbose. The logger
// is attached to the command context and retrieved via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		opts    auditOptions
	)

	root := &cobra.Command{
		Use:          "spmaudit [path]",
		Short:        "Audit Swift package dependencies for available updates",
		Long:         `spmaudit scans a project tree for Swift package manifests, lockfiles, and Xcode project descriptors, then checks every discovered dependency against its upstream repository for newer stable releases, missing licenses, and stale activity.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.root = pathArg(args)
			return runAudit(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("spmaudit %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/spmaudit/config.toml)")

	root.Flags().BoolVarP(&opts.transitive, "transitive", "t", false, "include transitive lockfile dependencies")
	root.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the report as JSON instead of a table")
	root.Flags().IntVar(&opts.workers, "workers", 0, "concurrent upstream lookups (default 16)")

	root.AddCommand(newUpdateCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// configPath is the --config override, shared by all commands.
var configPath string

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
