package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
	"github.com/oakmoss-dev/ghrecap/pkg/usecase"
)

func labeled(item *model.ClosedItem, labels ...string) *model.ClosedItem {
	for _, l := range labels {
		item.Labels = append(item.Labels, types.LabelName(l))
	}
	return item
}

func TestGroupLabelsCountsSuppressedIssues(t *testing.T) {
	// PR #42 (mcp) closed issue #40 (mcp): the label still counts both
	agg := usecase.Aggregate(
		[]*model.ClosedItem{labeled(pr(t, 42, 40), "mcp")},
		[]*model.ClosedItem{labeled(issue(t, 40), "mcp")},
		window(),
	)

	groups := usecase.GroupLabels(agg)
	gt.A(t, groups).Length(1)
	gt.Equal(t, groups[0].Name, types.LabelName("mcp"))
	gt.Equal(t, groups[0].Count, 2)
}

func TestGroupLabelsOmitsAbsentLabels(t *testing.T) {
	agg := usecase.Aggregate(
		[]*model.ClosedItem{pr(t, 1)},
		nil,
		window(),
	)
	gt.A(t, usecase.GroupLabels(agg)).Length(0)
}

func TestGroupLabelsOrdering(t *testing.T) {
	agg := usecase.Aggregate(
		[]*model.ClosedItem{
			labeled(pr(t, 1), "bug", "ui"),
			labeled(pr(t, 2), "bug"),
			labeled(pr(t, 3), "api"),
		},
		nil,
		window(),
	)

	groups := usecase.GroupLabels(agg)
	gt.A(t, groups).Length(3)
	gt.Equal(t, groups[0].Name, types.LabelName("bug")) // highest count first
	gt.Equal(t, groups[1].Name, types.LabelName("api")) // then name ascending
	gt.Equal(t, groups[2].Name, types.LabelName("ui"))
}

func TestGroupLabelsSummaries(t *testing.T) {
	agg := usecase.Aggregate(
		[]*model.ClosedItem{labeled(pr(t, 1), "bug")},
		[]*model.ClosedItem{labeled(issue(t, 2), "bug")},
		window(),
	)

	groups := usecase.GroupLabels(agg)
	gt.A(t, groups).Length(1)
	gt.S(t, groups[0].Summary).Contains("1 pull request")
	gt.S(t, groups[0].Summary).Contains("1 issue")
}
