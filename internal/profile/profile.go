package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Profile mirrors the profiles table. The ID is shared with the auth
// identity on the hosted platform.
type Profile struct {
	ID         uuid.UUID
	FullName   string
	Role       Role
	RegionID   *uuid.UUID
	RegionName string // loaded via JOIN, empty when unassigned
	CreatedAt  time.Time
}
