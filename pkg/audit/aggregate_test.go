package audit

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/matzehuels/spmaudit/pkg/manifest"
)

func resultFor(file, name string) Result {
	return Result{
		Record: manifest.DependencyRecord{
			Name:       name,
			URL:        "https://github.com/owner/" + name,
			SourceFile: file,
		},
	}
}

func TestAggregateDeterministic(t *testing.T) {
	results := []Result{
		resultFor("b/Package.swift", "zeta"),
		resultFor("a/Package.swift", "Beta"),
		resultFor("b/Package.swift", "alpha"),
		resultFor("a/Package.swift", "alpha"),
		resultFor("a/Package.swift", "Zeta"),
	}

	want := Aggregate(results)

	// Shuffled input produces identical groups.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Result, len(results))
		copy(shuffled, results)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Aggregate(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("Aggregate() not deterministic:\ngot  %+v\nwant %+v", got, want)
		}
	}
}

func TestAggregateOrdering(t *testing.T) {
	groups := Aggregate([]Result{
		resultFor("b/Package.swift", "dep"),
		resultFor("a/Package.swift", "beta"),
		resultFor("a/Package.swift", "Zeta"),
	})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].SourceFile != "a/Package.swift" || groups[1].SourceFile != "b/Package.swift" {
		t.Errorf("group order = %q, %q", groups[0].SourceFile, groups[1].SourceFile)
	}

	// Case-sensitive name sort: uppercase before lowercase.
	names := []string{groups[0].Results[0].Record.Name, groups[0].Results[1].Record.Name}
	if names[0] != "Zeta" || names[1] != "beta" {
		t.Errorf("name order = %v, want [Zeta beta]", names)
	}
}

func TestOutdated(t *testing.T) {
	results := []Result{
		{Outcome: UpdateOutcome{Kind: OutcomeUpToDate}},
		{Outcome: UpdateOutcome{Kind: OutcomeUpdateAvailable, Latest: "2.0.0"}},
		{Outcome: UpdateOutcome{Kind: OutcomeError}},
	}
	got := Outdated(results)
	if len(got) != 1 || got[0].Outcome.Latest != "2.0.0" {
		t.Errorf("Outdated() = %+v", got)
	}
}
