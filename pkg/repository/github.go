package repository

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/google/go-github/v69/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/interfaces"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
	"golang.org/x/oauth2"
)

// listPageSize is the page size for issue listing requests
const listPageSize = 100

// GitHub implements interfaces.Source over the GitHub REST API
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a GitHub source authenticated with the given token
func NewGitHub(ctx context.Context, token string) *GitHub {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}
	return &GitHub{client: github.NewClient(hc)}
}

// NewGitHubWithClient creates a GitHub source with a custom HTTP client
func NewGitHubWithClient(hc *http.Client) *GitHub {
	return &GitHub{client: github.NewClient(hc)}
}

// FetchClosed implements interfaces.Source. It lists closed issues and pull
// requests for the repository and keeps only those whose closed_at falls
// inside the window. One attempt, no retry.
func (g *GitHub) FetchClosed(ctx context.Context, repo model.Repo, window model.TimeWindow) ([]*model.ClosedItem, []*model.ClosedItem, error) {
	logger := ctxlog.From(ctx)

	opts := &github.IssueListByRepoOptions{
		State:     "closed",
		Since:     window.Start,
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: listPageSize,
		},
	}

	var prs, issues []*model.ClosedItem
	for {
		page, resp, err := g.client.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to list closed items",
				goerr.T(model.ErrTagFetch),
				goerr.V("repo", repo.String()))
		}

		for _, raw := range page {
			item, err := g.convertIssue(ctx, repo, raw, window)
			if err != nil {
				return nil, nil, err
			}
			if item == nil {
				continue
			}
			if item.IsPullRequest() {
				prs = append(prs, item)
			} else {
				issues = append(issues, item)
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	// Repository ordering: descending closure time
	sortByClosedAtDesc(prs)
	sortByClosedAtDesc(issues)

	logger.Debug("fetched closed items",
		"repo", repo.String(),
		"window", window.Label(),
		"prs", len(prs),
		"issues", len(issues),
	)
	return prs, issues, nil
}

// convertIssue maps one REST issue to a ClosedItem, or nil when it falls
// outside the window or outside the repository.
func (g *GitHub) convertIssue(ctx context.Context, repo model.Repo, raw *github.Issue, window model.TimeWindow) (*model.ClosedItem, error) {
	closedAt := raw.GetClosedAt().Time
	if closedAt.IsZero() || !window.Contains(closedAt) {
		return nil, nil
	}
	if !sameRepository(repo, raw.GetRepositoryURL()) {
		// Cross-repository data must never leak into the recap
		return nil, nil
	}

	kind := types.KindIssue
	if raw.IsPullRequest() {
		kind = types.KindPullRequest
	}

	item, err := model.NewClosedItem(kind, types.ItemNumber(raw.GetNumber()), raw.GetTitle(), closedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed item in API response",
			goerr.T(model.ErrTagFetch),
			goerr.V("number", raw.GetNumber()))
	}

	item.Author = types.Login(raw.GetUser().GetLogin())
	item.Comments = raw.GetComments()
	item.Milestone = raw.GetMilestone().GetTitle()
	item.URL = raw.GetHTMLURL()
	for _, l := range raw.Labels {
		item.Labels = append(item.Labels, types.LabelName(l.GetName()))
	}
	item.Linked = ParseClosingRefs(raw.GetBody())

	if kind == types.KindPullRequest {
		pr, _, err := g.client.PullRequests.Get(ctx, repo.Owner, repo.Name, raw.GetNumber())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get pull request details",
				goerr.T(model.ErrTagFetch),
				goerr.V("number", raw.GetNumber()))
		}
		item.Merger = types.Login(pr.GetMergedBy().GetLogin())
		item.Closer = item.Merger
	} else {
		item.Closer = types.Login(raw.GetClosedBy().GetLogin())
	}

	return item, nil
}

// HasClosedBefore implements interfaces.Source via the search API
func (g *GitHub) HasClosedBefore(ctx context.Context, repo model.Repo, login types.Login, before time.Time) (bool, error) {
	query := fmt.Sprintf("repo:%s author:%s is:closed closed:<%s",
		repo.String(), login, before.UTC().Format(time.RFC3339))

	result, _, err := g.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to search prior closures",
			goerr.T(model.ErrTagFetch),
			goerr.V("login", login))
	}
	return result.GetTotal() > 0, nil
}

// closingRefPattern matches GitHub closing keywords followed by a same-repo
// issue reference, e.g. "Closes #40" or "fixed #12".
var closingRefPattern = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+#(\d+)`)

// ParseClosingRefs extracts issue numbers referenced by closing keywords
func ParseClosingRefs(body string) []types.ItemNumber {
	matches := closingRefPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[types.ItemNumber]bool)
	var refs []types.ItemNumber
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		num := types.ItemNumber(n)
		if seen[num] {
			continue
		}
		seen[num] = true
		refs = append(refs, num)
	}
	return refs
}

func sameRepository(repo model.Repo, repositoryURL string) bool {
	if repositoryURL == "" {
		return true // list endpoint is already repo-scoped
	}
	suffix := fmt.Sprintf("/repos/%s/%s", repo.Owner, repo.Name)
	return len(repositoryURL) >= len(suffix) && repositoryURL[len(repositoryURL)-len(suffix):] == suffix
}

func sortByClosedAtDesc(items []*model.ClosedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ClosedAt.After(items[j].ClosedAt)
	})
}

var _ interfaces.Source = (*GitHub)(nil)
