package repository

import (
	"context"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/interfaces"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Discussions implements interfaces.Publisher over the GitHub GraphQL API.
// Repository Discussions have no REST create endpoint.
type Discussions struct {
	client *githubv4.Client
}

// NewDiscussions creates a Discussions publisher authenticated with the token
func NewDiscussions(ctx context.Context, token string) *Discussions {
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
	return &Discussions{client: githubv4.NewClient(hc)}
}

// NewDiscussionsWithClient creates a Discussions publisher with a custom HTTP client
func NewDiscussionsWithClient(hc *http.Client) *Discussions {
	return &Discussions{client: githubv4.NewClient(hc)}
}

// CreateDiscussion implements interfaces.Publisher
func (d *Discussions) CreateDiscussion(ctx context.Context, repo model.Repo, category, title, body string) (*model.Discussion, error) {
	repoID, categoryID, err := d.resolveCategory(ctx, repo, category)
	if err != nil {
		return nil, err
	}

	var m struct {
		CreateDiscussion struct {
			Discussion struct {
				ID  githubv4.String
				URL githubv4.URI
			}
		} `graphql:"createDiscussion(input: $input)"`
	}
	input := githubv4.CreateDiscussionInput{
		RepositoryID: repoID,
		CategoryID:   categoryID,
		Title:        githubv4.String(title),
		Body:         githubv4.String(body),
	}
	if err := d.client.Mutate(ctx, &m, input, nil); err != nil {
		return nil, goerr.Wrap(err, "failed to create discussion",
			goerr.T(model.ErrTagPublish),
			goerr.V("repo", repo.String()),
			goerr.V("title", title))
	}

	discussion := &model.Discussion{
		ID:  types.DiscussionID(m.CreateDiscussion.Discussion.ID),
		URL: m.CreateDiscussion.Discussion.URL.String(),
	}
	ctxlog.From(ctx).Info("discussion created",
		"title", title,
		"url", discussion.URL,
	)
	return discussion, nil
}

// AddComment implements interfaces.Publisher
func (d *Discussions) AddComment(ctx context.Context, discussionID types.DiscussionID, body string) error {
	var m struct {
		AddDiscussionComment struct {
			Comment struct {
				ID githubv4.String
			}
		} `graphql:"addDiscussionComment(input: $input)"`
	}
	input := githubv4.AddDiscussionCommentInput{
		DiscussionID: githubv4.ID(discussionID.String()),
		Body:         githubv4.String(body),
	}
	if err := d.client.Mutate(ctx, &m, input, nil); err != nil {
		return goerr.Wrap(err, "failed to add discussion comment",
			goerr.T(model.ErrTagPublish),
			goerr.V("discussionID", discussionID))
	}
	return nil
}

// resolveCategory looks up the repository node ID and the named category ID
func (d *Discussions) resolveCategory(ctx context.Context, repo model.Repo, category string) (githubv4.ID, githubv4.ID, error) {
	var q struct {
		Repository struct {
			ID                   githubv4.String
			DiscussionCategories struct {
				Nodes []struct {
					ID   githubv4.String
					Name githubv4.String
				}
			} `graphql:"discussionCategories(first: 25)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	}
	if err := d.client.Query(ctx, &q, vars); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to query discussion categories",
			goerr.T(model.ErrTagPublish),
			goerr.V("repo", repo.String()))
	}

	for _, node := range q.Repository.DiscussionCategories.Nodes {
		if string(node.Name) == category {
			return githubv4.ID(q.Repository.ID), githubv4.ID(node.ID), nil
		}
	}
	return nil, nil, goerr.Wrap(model.ErrCategoryNotFound, "category lookup failed",
		goerr.T(model.ErrTagPublish),
		goerr.V("repo", repo.String()),
		goerr.V("category", category))
}

var _ interfaces.Publisher = (*Discussions)(nil)
