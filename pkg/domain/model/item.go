package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// ClosedItem is a pull request or issue closed within the recap window
type ClosedItem struct {
	Kind      types.ItemKind
	Number    types.ItemNumber
	Title     string
	Author    types.Login // who opened the item
	Closer    types.Login // who closed it
	Merger    types.Login // who merged it (pull requests only)
	Labels    []types.LabelName
	Linked    []types.ItemNumber // same-repo items referenced by closing keywords
	Milestone string
	Comments  int
	URL       string
	ClosedAt  time.Time

	// Set by aggregation. Closes lists the issues a PR entry absorbs;
	// ClosedBy lists the PRs referencing an issue that stays listed.
	Closes   []types.ItemNumber
	ClosedBy []types.ItemNumber
}

// NewClosedItem creates a ClosedItem with the mandatory fields validated
func NewClosedItem(kind types.ItemKind, number types.ItemNumber, title string, closedAt time.Time) (*ClosedItem, error) {
	if !kind.IsValid() {
		return nil, goerr.New("invalid item kind", goerr.V("kind", kind))
	}
	if err := number.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid item number")
	}
	if closedAt.IsZero() {
		return nil, goerr.New("closed timestamp is required", goerr.V("number", number))
	}
	return &ClosedItem{
		Kind:     kind,
		Number:   number,
		Title:    title,
		ClosedAt: closedAt.UTC(),
	}, nil
}

// IsPullRequest reports whether the item is a pull request
func (c *ClosedItem) IsPullRequest() bool {
	return c.Kind == types.KindPullRequest
}

// HasLabel reports whether the item carries the given label
func (c *ClosedItem) HasLabel(name types.LabelName) bool {
	for _, l := range c.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// Actors returns every login that acted on the item with its role
func (c *ClosedItem) Actors() map[types.Login][]types.Role {
	actors := make(map[types.Login][]types.Role)
	if c.Author != "" {
		actors[c.Author] = append(actors[c.Author], types.RoleAuthor)
	}
	if c.Closer != "" {
		actors[c.Closer] = append(actors[c.Closer], types.RoleCloser)
	}
	if c.Merger != "" {
		actors[c.Merger] = append(actors[c.Merger], types.RoleMerger)
	}
	return actors
}
