// internal/app/features/users/types.go
package users

// CreateUserInput is the request body for POST /api/users. It pre-provisions
// a whitelist placeholder; the real account appears when the person
// registers with this email.
type CreateUserInput struct {
	Email       string `json:"email" validate:"required" label:"Email"`
	DisplayName string `json:"display_name" validate:"required,max=200" label:"Display name"`
	Role        string `json:"role" validate:"required,role" label:"Role"`
	Position    string `json:"position" validate:"max=200" label:"Position"`
}

// UpdateUserInput is the request body for PATCH /api/users/{uid}. Absent
// fields leave the stored value untouched. Email is fixed: it is the
// whitelist key. Display name is admin-editable here only; articles keep the
// author string they were saved with.
type UpdateUserInput struct {
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"`
	Position    *string `json:"position"`
	PhotoURL    *string `json:"photo_url"`
}
