package interfaces

import (
	"context"
	"time"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// Source provides read access to a repository's closed items
type Source interface {
	// FetchClosed returns the pull requests and issues whose closure
	// timestamp falls inside the window, scoped to the given repository.
	FetchClosed(ctx context.Context, repo model.Repo, window model.TimeWindow) (prs, issues []*model.ClosedItem, err error)

	// HasClosedBefore reports whether the login had any closed item in the
	// repository before the given instant. Used for first-time detection.
	HasClosedBefore(ctx context.Context, repo model.Repo, login types.Login, before time.Time) (bool, error)
}
