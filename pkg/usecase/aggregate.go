package usecase

import (
	"sort"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// AggregateResult holds the deduplicated listings for one window.
// Suppressed keeps the issues absorbed into PR entries; they still count
// toward labels, contributors and totals.
type AggregateResult struct {
	PRs        []*model.ClosedItem
	Issues     []*model.ClosedItem
	Suppressed []*model.ClosedItem
}

// Aggregate builds the cross-reference graph between this window's PRs and
// issues and removes duplicate listings. An issue closed by exactly one
// in-window PR is folded into that PR's entry; an issue linked to several
// PRs stays listed once with references to all of them. Items without
// cross-links are listed independently. Input ordering is preserved.
func Aggregate(prs, issues []*model.ClosedItem, window model.TimeWindow) *AggregateResult {
	prs = inWindow(prs, window)
	issues = inWindow(issues, window)

	prByNumber := make(map[types.ItemNumber]*model.ClosedItem, len(prs))
	for _, pr := range prs {
		prByNumber[pr.Number] = pr
	}
	issueByNumber := make(map[types.ItemNumber]*model.ClosedItem, len(issues))
	for _, issue := range issues {
		issueByNumber[issue.Number] = issue
	}

	// Edges from both directions: PR bodies naming issues, and issue
	// bodies naming PRs. linkingPRs maps issue number -> PR numbers.
	linkingPRs := make(map[types.ItemNumber][]types.ItemNumber)
	addEdge := func(issueNum, prNum types.ItemNumber) {
		for _, existing := range linkingPRs[issueNum] {
			if existing == prNum {
				return
			}
		}
		linkingPRs[issueNum] = append(linkingPRs[issueNum], prNum)
	}

	for _, pr := range prs {
		for _, ref := range pr.Linked {
			if _, ok := issueByNumber[ref]; ok {
				addEdge(ref, pr.Number)
			}
		}
	}
	for _, issue := range issues {
		for _, ref := range issue.Linked {
			if _, ok := prByNumber[ref]; ok {
				addEdge(issue.Number, ref)
			}
		}
	}

	result := &AggregateResult{PRs: prs}
	for _, issue := range issues {
		links := linkingPRs[issue.Number]
		switch len(links) {
		case 0:
			result.Issues = append(result.Issues, issue)
		case 1:
			pr := prByNumber[links[0]]
			pr.Closes = appendSorted(pr.Closes, issue.Number)
			result.Suppressed = append(result.Suppressed, issue)
		default:
			issue.ClosedBy = append([]types.ItemNumber(nil), links...)
			sort.Slice(issue.ClosedBy, func(i, j int) bool {
				return issue.ClosedBy[i] < issue.ClosedBy[j]
			})
			result.Issues = append(result.Issues, issue)
		}
	}

	return result
}

func appendSorted(nums []types.ItemNumber, n types.ItemNumber) []types.ItemNumber {
	nums = append(nums, n)
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

func inWindow(items []*model.ClosedItem, window model.TimeWindow) []*model.ClosedItem {
	out := make([]*model.ClosedItem, 0, len(items))
	for _, item := range items {
		if window.Contains(item.ClosedAt) {
			out = append(out, item)
		}
	}
	return out
}
