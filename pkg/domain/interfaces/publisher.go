package interfaces

import (
	"context"

	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// Publisher creates the recap Discussion thread and its follow-up comment
type Publisher interface {
	// CreateDiscussion posts a new Discussion with the given title and body
	// to the named category of the repository.
	CreateDiscussion(ctx context.Context, repo model.Repo, category, title, body string) (*model.Discussion, error)

	// AddComment posts a comment to an existing Discussion.
	AddComment(ctx context.Context, discussionID types.DiscussionID, body string) error
}

// Notifier announces a published recap to an out-of-band channel
type Notifier interface {
	AnnounceRecap(ctx context.Context, title, url string) error
}
