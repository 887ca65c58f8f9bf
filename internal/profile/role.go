package profile

import "fmt"

// Role is the three-level access role stored on a profile. The wire values
// predate this service and are kept for compatibility with existing rows.
type Role string

const (
	// RoleBase sees and records transactions only for their assigned region.
	RoleBase Role = "LEVEL_1"
	// RoleRegionEditor may record transactions into any region.
	RoleRegionEditor Role = "LEVEL_2"
	// RoleAdmin has the full cross-region view and all management surfaces.
	RoleAdmin Role = "LEVEL_3"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBase, RoleRegionEditor, RoleAdmin:
		return Role(s), nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanChooseRegion reports whether the role may record a transaction into a
// region other than its own.
func (r Role) CanChooseRegion() bool {
	switch r {
	case RoleRegionEditor, RoleAdmin:
		return true
	case RoleBase:
		return false
	}

	return false
}

// CanModifyTransactions reports whether the role may edit or delete
// existing transactions.
func (r Role) CanModifyTransactions() bool {
	return r == RoleAdmin
}
