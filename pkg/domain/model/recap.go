package model

import "github.com/oakmoss-dev/ghrecap/pkg/domain/types"

// LabelGroup is a per-label cluster of this window's closed items
type LabelGroup struct {
	Name    types.LabelName
	Count   int
	Summary string
}

// Recap is the fully aggregated weekly report, ready for rendering
type Recap struct {
	ID           types.ReportID
	Repo         Repo
	Window       TimeWindow
	Highlights   []string
	PRs          []*ClosedItem // deduplicated, repository order
	Issues       []*ClosedItem // deduplicated, repository order
	Labels       []LabelGroup
	Contributors []Contributor
	LookingAhead []string

	// Overflow holds items moved out of the main sections when the
	// window exceeds the threshold; they render only under Full Lists.
	OverflowPRs    []*ClosedItem
	OverflowIssues []*ClosedItem
}

// TotalClosures counts every closed item in the window, including
// dedup-suppressed issues absorbed into PR entries.
func (r *Recap) TotalClosures() int {
	n := len(r.PRs) + len(r.Issues) + len(r.OverflowPRs) + len(r.OverflowIssues)
	for _, pr := range r.PRs {
		n += len(pr.Closes)
	}
	for _, pr := range r.OverflowPRs {
		n += len(pr.Closes)
	}
	return n
}

// IsEmpty reports whether the window produced no closures at all
func (r *Recap) IsEmpty() bool {
	return len(r.PRs) == 0 && len(r.Issues) == 0 &&
		len(r.OverflowPRs) == 0 && len(r.OverflowIssues) == 0
}

// Discussion is the published recap thread
type Discussion struct {
	ID  types.DiscussionID
	URL string
}
