package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Repo identifies the single repository a recap is scoped to
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo parses an "owner/name" identifier
func ParseRepo(s string) (Repo, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, goerr.New("repository must be in owner/name form", goerr.V("input", s))
	}
	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the "owner/name" form
func (r Repo) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// IsZero reports whether the repository is unset
func (r Repo) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}
