package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/spmaudit/pkg/audit"
	"github.com/matzehuels/spmaudit/pkg/report"
	"github.com/matzehuels/spmaudit/pkg/scan"
)

type auditOptions struct {
	root       string
	transitive bool
	jsonOut    bool
	workers    int
}

func runAudit(ctx context.Context, opts auditOptions) error {
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

	root, err := filepath.Abs(opts.root)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	scanner := scan.New(scan.Options{
		IncludeTransitive: opts.transitive,
		Logf:              logger.Debugf,
	})
	records := scanner.Scan(root)
	prog.done(fmt.Sprintf("Found %d dependencies", len(records)))

	if len(records) == 0 {
		printInfo("No Swift package dependencies found under %s", root)
		return nil
	}

	client := newGitHubClient(cfg, backing)
	auditor := audit.New(client, audit.Options{
		Workers:      opts.workers,
		CheckoutsDir: filepath.Join(root, ".build", "checkouts"),
		Logf:         logger.Debugf,
	})

	prog = newProgress(logger)
	results := auditor.Run(ctx, records)
	prog.done("Checked upstream releases")

	groups := audit.Aggregate(results)
	rep := report.FromResults(root, groups)

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	renderAudit(groups)
	printSummary(results)
	notifyNewerVersion(ctx)
	return nil
}

func printSummary(results []audit.Result) {
	var outdated, errored int
	for _, r := range results {
		switch r.Outcome.Kind {
		case audit.OutcomeUpdateAvailable:
			outdated++
		case audit.OutcomeError:
			errored++
		}
	}

	switch {
	case outdated == 0 && errored == 0:
		printSuccess("All %d dependencies are up to date", len(results))
	case outdated > 0:
		printWarning("%d of %d dependencies have updates available", outdated, len(results))
		printDetail("Run `spmaudit update` to apply them")
	}
	if errored > 0 {
		printError("%d dependencies could not be checked", errored)
	}
}
