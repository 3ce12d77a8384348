package usecase

import (
	"fmt"
	"sort"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// GroupLabels clusters the window's closed items by label. Suppressed issues
// count toward their labels even though they no longer render standalone.
// Labels absent this window are omitted. Ordering: count descending, then
// label name ascending.
func GroupLabels(agg *AggregateResult) []model.LabelGroup {
	counts := make(map[types.LabelName]int)
	prCounts := make(map[types.LabelName]int)
	issueCounts := make(map[types.LabelName]int)

	count := func(items []*model.ClosedItem, byKind map[types.LabelName]int) {
		for _, item := range items {
			for _, label := range item.Labels {
				counts[label]++
				byKind[label]++
			}
		}
	}
	count(agg.PRs, prCounts)
	count(agg.Issues, issueCounts)
	count(agg.Suppressed, issueCounts)

	groups := make([]model.LabelGroup, 0, len(counts))
	for label, n := range counts {
		groups = append(groups, model.LabelGroup{
			Name:    label,
			Count:   n,
			Summary: labelSummary(label, prCounts[label], issueCounts[label]),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

func labelSummary(label types.LabelName, prs, issues int) string {
	switch {
	case prs > 0 && issues > 0:
		return fmt.Sprintf("%s work landed across %s and %s this week",
			label, plural(prs, "pull request"), plural(issues, "issue"))
	case prs > 0:
		return fmt.Sprintf("%s saw %s merged this week", label, plural(prs, "pull request"))
	default:
		return fmt.Sprintf("%s saw %s closed this week", label, plural(issues, "issue"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
