package audit

import "sort"

// Group is the set of results that share a source file.
type Group struct {
	SourceFile string
	Results    []Result
}

// Aggregate groups results by source file and sorts deterministically:
// groups by source file path, results within a group by dependency name
// (both lexicographic, case-sensitive). The same result set always yields
// the same output regardless of the order the workers finished in.
func Aggregate(results []Result) []Group {
	byFile := make(map[string][]Result)
	for _, r := range results {
		byFile[r.Record.SourceFile] = append(byFile[r.Record.SourceFile], r)
	}

	groups := make([]Group, 0, len(byFile))
	for file, rs := range byFile {
		sort.Slice(rs, func(i, j int) bool {
			return rs[i].Record.Name < rs[j].Record.Name
		})
		groups = append(groups, Group{SourceFile: file, Results: rs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SourceFile < groups[j].SourceFile
	})
	return groups
}

// Outdated filters results down to those with an available update,
// preserving order.
func Outdated(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Outcome.Kind == OutcomeUpdateAvailable {
			out = append(out, r)
		}
	}
	return out
}
