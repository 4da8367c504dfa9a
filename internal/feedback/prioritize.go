package feedback

import (
	"sort"

	"github.com/dshills/prcritic/internal/analysis"
)

// Prioritize total-orders feedback items for display: severity rank first
// (error before high before medium before low before info, unknown last),
// then category lexicographically, then line number ascending. The sort is
// stable, so equal-key items keep their relative input order and the result
// does not depend on which per-file feedback call finished first.
func Prioritize(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := analysis.SeverityRank(sorted[i].Severity), analysis.SeverityRank(sorted[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].Line < sorted[j].Line
	})
	return sorted
}
