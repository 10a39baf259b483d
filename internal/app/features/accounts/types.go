// internal/app/features/accounts/types.go
package accounts

import "github.com/dalemusser/stratapress/internal/domain/models"

// LoginInput is the request body for POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// RegisterInput is the request body for POST /api/auth/register. The
// password length is checked here so a too-short password is rejected
// before any identity-provider call happens.
type RegisterInput struct {
	Email           string `json:"email" validate:"required" label:"Email"`
	Password        string `json:"password" validate:"required,min=6" label:"Password"`
	ConfirmPassword string `json:"confirm_password" validate:"required" label:"Password confirmation"`
}

// UpdateMeInput is the request body for PATCH /api/auth/me. The profile
// photo is the only field a person may change on their own account.
type UpdateMeInput struct {
	PhotoURL *string `json:"photo_url"`
}

// SessionResponse is returned by login and register: the profile the
// session now belongs to.
type SessionResponse struct {
	User *models.UserProfile `json:"user"`
}
