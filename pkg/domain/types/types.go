package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemKind distinguishes pull requests from issues
type ItemKind string

const (
	KindPullRequest ItemKind = "pull_request"
	KindIssue       ItemKind = "issue"
)

// String returns the string representation
func (k ItemKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known value
func (k ItemKind) IsValid() bool {
	return k == KindPullRequest || k == KindIssue
}

// ItemNumber represents a pull request or issue number
type ItemNumber int

// String returns the "#N" reference form
func (n ItemNumber) String() string {
	return fmt.Sprintf("#%d", int(n))
}

// Validate checks if the number is positive
func (n ItemNumber) Validate() error {
	if n <= 0 {
		return fmt.Errorf("item number must be positive: %d", n)
	}
	return nil
}

// Login represents a GitHub user login
type Login string

// String returns the string representation
func (l Login) String() string {
	return string(l)
}

// LabelName represents a GitHub label name
type LabelName string

// String returns the string representation
func (n LabelName) String() string {
	return string(n)
}

// Role represents how a contributor participated in a closed item
type Role string

const (
	RoleAuthor Role = "author"
	RoleCloser Role = "closer"
	RoleMerger Role = "merger"
)

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// ReportID identifies a single recap generation run
type ReportID string

// String returns the string representation
func (id ReportID) String() string {
	return string(id)
}

// NewReportID creates a new ReportID
func NewReportID() ReportID {
	return ReportID(fmt.Sprintf("recap-%s", uuid.New().String()))
}

// DiscussionID represents a GitHub Discussion node ID
type DiscussionID string

// String returns the string representation
func (id DiscussionID) String() string {
	return string(id)
}
