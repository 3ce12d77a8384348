package model

import "github.com/oakmoss-dev/ghrecap/pkg/domain/types"

// Contributor is a person who acted on at least one closed item this window
type Contributor struct {
	Handle    types.Login
	Roles     []types.Role
	FirstTime bool
}

// HasRole reports whether the contributor holds the given role
func (c Contributor) HasRole(role types.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AddRole appends a role if not already present
func (c *Contributor) AddRole(role types.Role) {
	if !c.HasRole(role) {
		c.Roles = append(c.Roles, role)
	}
}
