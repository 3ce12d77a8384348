package usecase

import (
	"sort"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
)

const (
	// closureThreshold triggers the top-N trimming of the main sections
	closureThreshold = 30
	// mainSectionLimit caps each main section once the threshold is hit
	mainSectionLimit = 15
	// highlight bullet bounds
	highlightMin = 3
	highlightMax = 6
)

// ImpactScore ranks an item by label significance plus discussion volume.
// Ties break by item number ascending, keeping the ranking deterministic.
func ImpactScore(item *model.ClosedItem, weights *model.WeightsConfig) int {
	score := item.Comments
	for _, label := range item.Labels {
		score += weights.WeightOf(label)
	}
	return score
}

// RankByImpact returns a copy of items sorted by impact score descending
func RankByImpact(items []*model.ClosedItem, weights *model.WeightsConfig) []*model.ClosedItem {
	ranked := append([]*model.ClosedItem(nil), items...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ImpactScore(ranked[i], weights), ImpactScore(ranked[j], weights)
		if si != sj {
			return si > sj
		}
		return ranked[i].Number < ranked[j].Number
	})
	return ranked
}

// applyThreshold moves low-impact items into the overflow lists when the
// window's total closures exceed the threshold. Main section ordering
// (repository order) is preserved for the items that stay.
func applyThreshold(recap *model.Recap, agg *AggregateResult, weights *model.WeightsConfig) {
	total := recap.TotalClosures()
	if total <= closureThreshold {
		return
	}

	keepPRs := topByImpact(agg.PRs, weights, mainSectionLimit)
	keepIssues := topByImpact(agg.Issues, weights, mainSectionLimit)

	recap.PRs, recap.OverflowPRs = splitKept(agg.PRs, keepPRs)
	recap.Issues, recap.OverflowIssues = splitKept(agg.Issues, keepIssues)
}

// topByImpact returns the set of item numbers that survive trimming
func topByImpact(items []*model.ClosedItem, weights *model.WeightsConfig, limit int) map[*model.ClosedItem]bool {
	kept := make(map[*model.ClosedItem]bool, limit)
	for i, item := range RankByImpact(items, weights) {
		if i >= limit {
			break
		}
		kept[item] = true
	}
	return kept
}

func splitKept(items []*model.ClosedItem, kept map[*model.ClosedItem]bool) (main, overflow []*model.ClosedItem) {
	for _, item := range items {
		if kept[item] {
			main = append(main, item)
		} else {
			overflow = append(overflow, item)
		}
	}
	return main, overflow
}
