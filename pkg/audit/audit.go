// Package audit checks discovered dependency records against their upstream
// repositories: it resolves the latest stable version for each record
// concurrently, classifies the outcome, and collects local hygiene signals.
package audit

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/matzehuels/spmaudit/pkg/errors"
	"github.com/matzehuels/spmaudit/pkg/manifest"
	"github.com/matzehuels/spmaudit/pkg/semver"
)

const defaultWorkers = 16

// OutcomeKind classifies an update check.
type OutcomeKind int

const (
	OutcomeUpToDate OutcomeKind = iota
	OutcomeUpdateAvailable
	OutcomeNoReleases
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeUpdateAvailable:
		return "update-available"
	case OutcomeNoReleases:
		return "no-releases"
	default:
		return "error"
	}
}

// UpdateOutcome is the result of checking one dependency against upstream.
type UpdateOutcome struct {
	Kind    OutcomeKind
	Current string
	Latest  string
	Message string
}

// Signal is a ternary hygiene observation: a check can establish presence,
// absence, or nothing at all (no local checkout to inspect).
type Signal int

const (
	SignalUnknown Signal = iota
	SignalPresent
	SignalMissing
)

func (s Signal) String() string {
	switch s {
	case SignalPresent:
		return "yes"
	case SignalMissing:
		return "no"
	default:
		return "?"
	}
}

// Hygiene holds per-dependency repository health signals.
type Hygiene struct {
	Readme          Signal
	License         Signal
	LicenseCategory string
	ToolsVersion    string
	LastCommit      *time.Time
}

// Result pairs a dependency record with its audit findings.
type Result struct {
	Record  manifest.DependencyRecord
	Outcome UpdateOutcome
	Hygiene Hygiene
}

// Resolver looks up upstream repository information.
type Resolver interface {
	// LatestVersion returns the newest stable version of owner/repo,
	// normalized.
	LatestVersion(ctx context.Context, owner, repo string) (string, error)
	// LastPushed returns the repository's last push time.
	LastPushed(ctx context.Context, owner, repo string) (time.Time, error)
}

// Options configures an Auditor.
type Options struct {
	// Workers bounds concurrent upstream lookups.
	Workers int
	// CheckoutsDir is the SwiftPM checkouts directory used for local
	// hygiene inspection (optional).
	CheckoutsDir string
	// Logf receives progress/diagnostic messages (optional).
	Logf func(string, ...any)
}

// Auditor runs update checks against a Resolver.
type Auditor struct {
	resolver     Resolver
	workers      int
	checkoutsDir string
	logf         func(string, ...any)
}

// New creates an Auditor.
func New(resolver Resolver, opts Options) *Auditor {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Auditor{
		resolver:     resolver,
		workers:      workers,
		checkoutsDir: opts.CheckoutsDir,
		logf:         logf,
	}
}

// Run audits all records with a bounded worker pool and returns one Result
// per record, in input order. Per-record failures are captured in the
// result, never returned: one unreachable repository must not abort the
// whole audit.
func (a *Auditor) Run(ctx context.Context, records []manifest.DependencyRecord) []Result {
	results := make([]Result, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range a.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.audit(ctx, records[i])
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (a *Auditor) audit(ctx context.Context, rec manifest.DependencyRecord) Result {
	res := Result{
		Record:  rec,
		Outcome: UpdateOutcome{Current: rec.DeclaredVersion},
		Hygiene: InspectCheckout(a.checkoutsDir, rec.Name),
	}

	owner, repo, ok := manifest.SplitGitHubURL(rec.URL)
	if !ok {
		res.Outcome.Kind = OutcomeError
		res.Outcome.Message = "unsupported repository host"
		return res
	}

	latest, err := a.resolver.LatestVersion(ctx, owner, repo)
	switch {
	case apperrors.Is(err, apperrors.ErrCodeNoReleases):
		res.Outcome.Kind = OutcomeNoReleases
	case err != nil:
		a.logf("resolve %s/%s: %v", owner, repo, err)
		res.Outcome.Kind = OutcomeError
		res.Outcome.Message = apperrors.UserMessage(err)
	case semver.IsNewer(latest, rec.DeclaredVersion):
		res.Outcome.Kind = OutcomeUpdateAvailable
		res.Outcome.Latest = latest
	default:
		res.Outcome.Kind = OutcomeUpToDate
		res.Outcome.Latest = latest
	}

	if res.Hygiene.LastCommit == nil {
		if pushed, err := a.resolver.LastPushed(ctx, owner, repo); err == nil {
			res.Hygiene.LastCommit = &pushed
		}
	}
	return res
}
