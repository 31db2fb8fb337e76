// Package roles defines the fixed role hierarchy for the two tenancy scopes.
// Pure data and logic; no I/O.
package roles

import (
	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// Scope is the tenancy level a role applies within.
type Scope string

const (
	ScopeAgency Scope = "agency"
	ScopeClient Scope = "client"
)

// Role is a role name within a scope. The same name ("owner", "admin") can
// exist in both scopes with different ranks; always pair a Role with its
// Scope when comparing.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleAnalyst  Role = "analyst"
	RoleViewer   Role = "viewer"
)

// agencyRanks and clientRanks are the single source of truth for which roles
// are valid per scope and how they order. Rank is informational (display,
// sorting); access checks use explicit role sets, never a rank threshold.
var agencyRanks = map[Role]int{
	RoleOwner: 2,
	RoleAdmin: 1,
}

var clientRanks = map[Role]int{
	RoleOwner:    5,
	RoleAdmin:    4,
	RoleOperator: 3,
	RoleAnalyst:  2,
	RoleViewer:   1,
}

func ranksFor(scope Scope) map[Role]int {
	switch scope {
	case ScopeAgency:
		return agencyRanks
	case ScopeClient:
		return clientRanks
	default:
		return nil
	}
}

// Rank returns the total-order rank of a role within a scope, or 0 when the
// role is not valid for that scope.
func Rank(scope Scope, role Role) int {
	return ranksFor(scope)[role]
}

// Valid reports whether role is a defined role for the scope.
func Valid(scope Scope, role Role) bool {
	_, ok := ranksFor(scope)[role]
	return ok
}

// Satisfies reports whether actualRole is one of the allowed roles.
//
// This is deliberately set membership, not a minimum-rank comparison: call
// sites enumerate every role they accept, and some accept non-contiguous
// subsets (e.g. the webinar console admits owner/admin/operator but not
// analyst). Do not replace this with a threshold check.
func Satisfies(scope Scope, actualRole Role, allowed []Role) bool {
	if !Valid(scope, actualRole) {
		return false
	}
	for _, r := range allowed {
		if actualRole == r {
			return true
		}
	}
	return false
}

// Parse constructs a Role from external input, enforcing scope validity.
//
// Usage: call from handlers/adapters when parsing requests; direct casting
// bypasses validation.
func Parse(scope Scope, s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !Valid(scope, r) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role for scope")
	}
	return r, nil
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
