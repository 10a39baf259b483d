// internal/domain/models/user.go
package models

// Terminology: User Identifiers
//   - UID / uid: The document key of a user profile. For an activated account
//     this is the identifier issued by the external auth service. For a
//     whitelist placeholder (pre-provisioned by an admin, not yet activated)
//     it is the candidate's lowercased email address.

import (
	"time"
)

// UserProfile represents a staff member's profile document.
//
// A profile exists in one of two states:
//   - Placeholder: created by an administrator, keyed by email, no auth
//     identity exists yet.
//   - Activated: keyed by the auth service's UID after the owner registered
//     and the placeholder was migrated.
type UserProfile struct {
	UID         string    `bson:"_id" json:"uid"`
	Email       string    `bson:"email" json:"email"` // lowercase, unique across profiles
	DisplayName string    `bson:"display_name" json:"display_name"`
	Role        string    `bson:"role" json:"role"`         // admin, staff
	Position    string    `bson:"position" json:"position"` // free text (e.g. "Anggota")
	PhotoURL    string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPlaceholder reports whether the profile is still a pre-activation
// placeholder, i.e. keyed by its own email rather than an auth UID.
func (u *UserProfile) IsPlaceholder() bool {
	return u.UID == u.Email
}

// User roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// AllRoles returns all valid user roles.
func AllRoles() []string {
	return []string{
		RoleAdmin,
		RoleStaff,
	}
}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
