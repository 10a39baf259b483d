// Package users provides the admin-only user management endpoints: listing
// profiles, pre-provisioning whitelist placeholders, and editing or removing
// profiles.
//
// Deleting a profile does not touch the auth identity; the session guard
// refuses sessions whose UID has no profile, which is what actually locks
// the person out.
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/stratapress/internal/app/store/users"
	"github.com/dalemusser/stratapress/internal/app/system/inputval"
	"github.com/dalemusser/stratapress/internal/app/system/jsonutil"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/app/system/timeouts"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler handles user management requests.
type Handler struct {
	users  *userstore.Store
	logger *zap.Logger
}

// NewHandler creates a users handler.
func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// List handles GET /api/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.users.List(ctx)
	if err != nil {
		h.logger.Error("user list failed", zap.Error(err))
		jsonutil.InternalError(w, "user list failed")
		return
	}
	if list == nil {
		list = []models.UserProfile{}
	}
	jsonutil.OK(w, map[string]any{"users": list})
}

// Create handles POST /api/users: whitelist a new staff member.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateUserInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, result.Fields())
		return
	}
	if !inputval.IsValidEmail(normalize.Email(in.Email)) {
		jsonutil.ValidationError(w, map[string]string{"email": "A valid email address is required."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profile, err := h.users.CreatePlaceholder(ctx, in.Email, in.DisplayName, in.Role, in.Position)
	if err != nil {
		if errors.Is(err, userstore.ErrAlreadyWhitelisted) {
			jsonutil.Conflict(w, "email already has a profile")
			return
		}
		h.logger.Error("placeholder create failed", zap.Error(err))
		jsonutil.InternalError(w, "user create failed")
		return
	}

	jsonutil.Created(w, profile)
}

// Update handles PATCH /api/users/{uid}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateUserInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if in.Role != nil && !models.IsValidRole(normalize.Role(*in.Role)) {
		jsonutil.BadRequest(w, "invalid role")
		return
	}
	if in.DisplayName != nil && normalize.Name(*in.DisplayName) == "" {
		jsonutil.BadRequest(w, "display_name must not be empty")
		return
	}
	if in.PhotoURL != nil && *in.PhotoURL != "" && !inputval.IsValidPhotoRef(*in.PhotoURL) {
		jsonutil.BadRequest(w, "photo_url must be an http(s) URL or an embedded data:image/ URI")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	uid := chi.URLParam(r, "uid")
	existing, err := h.users.Get(ctx, uid)
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		jsonutil.InternalError(w, "user update failed")
		return
	}
	if existing == nil {
		jsonutil.NotFound(w, "user not found")
		return
	}

	err = h.users.SaveMerge(ctx, uid, userstore.ProfilePatch{
		DisplayName: in.DisplayName,
		Role:        in.Role,
		Position:    in.Position,
		PhotoURL:    in.PhotoURL,
	})
	if err != nil {
		h.logger.Error("profile update failed", zap.Error(err))
		jsonutil.InternalError(w, "user update failed")
		return
	}

	updated, err := h.users.Get(ctx, uid)
	if err != nil || updated == nil {
		h.logger.Error("profile reload failed", zap.Error(err))
		jsonutil.InternalError(w, "user update failed")
		return
	}
	jsonutil.OK(w, updated)
}

// Delete handles DELETE /api/users/{uid}. Deleting an already-gone profile
// succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.users.Delete(ctx, chi.URLParam(r, "uid")); err != nil {
		h.logger.Error("profile delete failed", zap.Error(err))
		jsonutil.InternalError(w, "user delete failed")
		return
	}
	jsonutil.NoContent(w)
}
