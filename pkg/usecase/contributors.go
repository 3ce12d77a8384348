package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/ctxlog"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/interfaces"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// BuildRoster derives the contributor list from the window's item actors.
// First-time detection asks the source for closures before the window start;
// a lookup failure leaves the flag false rather than aborting the run.
func BuildRoster(ctx context.Context, source interfaces.Source, repo model.Repo, window model.TimeWindow, agg *AggregateResult) []model.Contributor {
	byHandle := make(map[types.Login]*model.Contributor)

	collect := func(items []*model.ClosedItem) {
		for _, item := range items {
			for login, roles := range item.Actors() {
				c, ok := byHandle[login]
				if !ok {
					c = &model.Contributor{Handle: login}
					byHandle[login] = c
				}
				for _, role := range roles {
					c.AddRole(role)
				}
			}
		}
	}
	collect(agg.PRs)
	collect(agg.Issues)
	collect(agg.Suppressed)

	roster := make([]model.Contributor, 0, len(byHandle))
	for _, c := range byHandle {
		seen, err := source.HasClosedBefore(ctx, repo, c.Handle, window.Start)
		if err != nil {
			ctxlog.From(ctx).Warn("first-time lookup failed",
				"handle", c.Handle,
				"error", err,
			)
		} else {
			c.FirstTime = !seen
		}
		roster = append(roster, *c)
	}

	sort.Slice(roster, func(i, j int) bool {
		return roster[i].Handle < roster[j].Handle
	})
	return roster
}
