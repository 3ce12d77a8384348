package repository

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/interfaces"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// Memory implements interfaces.Source with in-memory data, for tests and
// offline runs against prepared fixtures.
type Memory struct {
	mu           sync.RWMutex
	repo         model.Repo
	prs          []*model.ClosedItem
	issues       []*model.ClosedItem
	priorClosers map[types.Login]bool
	fetchErr     error
}

// NewMemory creates an empty in-memory source scoped to the given repository
func NewMemory(repo model.Repo) *Memory {
	return &Memory{
		repo:         repo,
		priorClosers: make(map[types.Login]bool),
	}
}

// AddPR seeds a closed pull request
func (m *Memory) AddPR(item *model.ClosedItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prs = append(m.prs, item)
}

// AddIssue seeds a closed issue
func (m *Memory) AddIssue(item *model.ClosedItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = append(m.issues, item)
}

// SetPriorCloser marks a login as having closures before any window
func (m *Memory) SetPriorCloser(login types.Login) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priorClosers[login] = true
}

// FailFetch makes subsequent FetchClosed calls return the given error
func (m *Memory) FailFetch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

// FetchClosed implements interfaces.Source
func (m *Memory) FetchClosed(ctx context.Context, repo model.Repo, window model.TimeWindow) ([]*model.ClosedItem, []*model.ClosedItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.fetchErr != nil {
		return nil, nil, goerr.Wrap(m.fetchErr, "failed to fetch closed items",
			goerr.T(model.ErrTagFetch))
	}
	if repo != m.repo {
		return nil, nil, goerr.Wrap(model.ErrRepoMismatch, "source is scoped to another repository",
			goerr.T(model.ErrTagFetch),
			goerr.V("want", m.repo.String()),
			goerr.V("got", repo.String()))
	}

	prs := filterWindow(m.prs, window)
	issues := filterWindow(m.issues, window)
	return prs, issues, nil
}

// HasClosedBefore implements interfaces.Source
func (m *Memory) HasClosedBefore(ctx context.Context, repo model.Repo, login types.Login, before time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.priorClosers[login], nil
}

func filterWindow(items []*model.ClosedItem, window model.TimeWindow) []*model.ClosedItem {
	var out []*model.ClosedItem
	for _, item := range items {
		if window.Contains(item.ClosedAt) {
			itemCopy := *item
			out = append(out, &itemCopy)
		}
	}
	return out
}

var _ interfaces.Source = (*Memory)(nil)
