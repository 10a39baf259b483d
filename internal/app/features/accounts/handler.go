// Package accounts provides the session endpoints: login, logout, the
// whitelist registration flow, and the current-user lookup.
//
// Registration is deliberately ordered: the auth identity is created first,
// then the whitelist is consulted. A candidate who is not pre-registered gets
// their fresh identity deleted again (rollback), so a failed registration
// leaves no identity behind. The placeholder-to-profile migration is not
// atomic; every step is written so a crashed registration can be retried.
package accounts

import (
	"context"
	"errors"
	"net/http"
	"time"

	userstore "github.com/dalemusser/stratapress/internal/app/store/users"
	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/app/system/authidp"
	"github.com/dalemusser/stratapress/internal/app/system/inputval"
	"github.com/dalemusser/stratapress/internal/app/system/jsonutil"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/app/system/timeouts"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"go.uber.org/zap"
)

// Handler handles account and session requests.
type Handler struct {
	users    *userstore.Store
	provider authidp.Provider
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewHandler creates an accounts handler.
func NewHandler(users *userstore.Store, provider authidp.Provider, sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		users:    users,
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

// Login handles POST /api/auth/login.
//
// The identity provider verifies the credentials; the profile document then
// decides whether a session is issued. An identity without a profile is not
// a working account and gets a 403, not a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, result.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ident, err := h.provider.SignIn(ctx, normalize.Email(in.Email), in.Password)
	if err != nil {
		if errors.Is(err, authidp.ErrInvalidCredentials) {
			jsonutil.Unauthorized(w, "invalid email or password")
			return
		}
		h.logger.Error("sign-in failed", zap.Error(err))
		jsonutil.InternalError(w, "sign-in failed")
		return
	}

	profile, err := h.users.Get(ctx, ident.UID)
	if err != nil {
		h.logger.Error("profile lookup failed", zap.String("uid", ident.UID), zap.Error(err))
		jsonutil.InternalError(w, "profile lookup failed")
		return
	}
	if profile == nil {
		h.logger.Warn("login refused: identity has no profile", zap.String("uid", ident.UID))
		jsonutil.Forbidden(w, "account has no profile")
		return
	}

	if err := h.sessions.CreateSession(w, r, profile.UID, profile.Role, ""); err != nil {
		h.logger.Error("session create failed", zap.Error(err))
		jsonutil.InternalError(w, "session create failed")
		return
	}

	jsonutil.OK(w, SessionResponse{User: profile})
}

// Register handles POST /api/auth/register.
//
// Steps, in order:
//  1. Validate the input locally; nothing external happens for bad input.
//  2. Create the auth identity. An email already registered is retried as a
//     sign-in, which lets a crashed earlier registration complete.
//  3. Look the email up in the profiles. No match means the candidate was
//     never whitelisted: the identity from step 2 is deleted again and the
//     request is refused.
//  4. Migrate the placeholder to a profile keyed by the new UID, then delete
//     the placeholder. A profile already keyed by the UID means a previous
//     attempt got that far; registration just finishes idempotently.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, result.Fields())
		return
	}

	email := normalize.Email(in.Email)
	if !inputval.IsValidEmail(email) {
		jsonutil.ValidationError(w, map[string]string{"email": "A valid email address is required."})
		return
	}
	if in.Password != in.ConfirmPassword {
		jsonutil.ValidationError(w, map[string]string{"confirm_password": "Passwords do not match."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ident, err := h.provider.CreateIdentity(ctx, email, in.Password)
	if errors.Is(err, authidp.ErrEmailInUse) {
		// The identity may be a leftover from a crashed registration.
		// If the credentials match it, resume; otherwise the email is
		// genuinely taken.
		ident, err = h.provider.SignIn(ctx, email, in.Password)
		if err != nil {
			jsonutil.Conflict(w, "email is already registered")
			return
		}
	} else if err != nil {
		switch {
		case errors.Is(err, authidp.ErrInvalidEmail):
			jsonutil.ValidationError(w, map[string]string{"email": "A valid email address is required."})
		case errors.Is(err, authidp.ErrWeakPassword):
			jsonutil.ValidationError(w, map[string]string{"password": "Password must be at least 6 characters."})
		default:
			h.logger.Error("identity create failed", zap.Error(err))
			jsonutil.InternalError(w, "registration failed")
		}
		return
	}

	matches, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		h.logger.Error("whitelist lookup failed", zap.String("email", email), zap.Error(err))
		jsonutil.InternalError(w, "registration failed")
		return
	}

	if len(matches) == 0 {
		// Not whitelisted: undo the identity so the failed registration
		// leaves nothing behind.
		if delErr := h.provider.DeleteIdentity(ctx, ident.Token); delErr != nil {
			h.logger.Error("identity rollback failed, orphaned identity remains",
				zap.String("uid", ident.UID),
				zap.Error(delErr))
		}
		jsonutil.Forbidden(w, "email is not pre-registered; ask an administrator to add you")
		return
	}

	profile, err := h.migrateProfile(ctx, ident, matches)
	if err != nil {
		h.logger.Error("profile migration failed", zap.String("uid", ident.UID), zap.Error(err))
		jsonutil.InternalError(w, "registration failed")
		return
	}

	if err := h.sessions.CreateSession(w, r, profile.UID, profile.Role, ""); err != nil {
		h.logger.Error("session create failed", zap.Error(err))
		jsonutil.InternalError(w, "session create failed")
		return
	}

	jsonutil.Created(w, SessionResponse{User: profile})
}

// migrateProfile turns a whitelist placeholder into a profile keyed by the
// identity's UID. If a profile with that UID already exists, an earlier
// attempt completed the migration and it is reused as-is.
func (h *Handler) migrateProfile(ctx context.Context, ident *authidp.Identity, matches []models.UserProfile) (*models.UserProfile, error) {
	var placeholder *models.UserProfile
	for i := range matches {
		m := &matches[i]
		if m.UID == ident.UID {
			// Already migrated by a previous attempt. Placeholder cleanup
			// below still runs in case that attempt crashed before it.
			h.cleanupPlaceholders(ctx, matches, ident.UID)
			return m, nil
		}
		if m.IsPlaceholder() && placeholder == nil {
			placeholder = m
		}
	}

	if placeholder == nil {
		// Whitelist matches exist but none is usable: every match is keyed
		// by some other UID. Treat as an email collision.
		return nil, errors.New("whitelist entries exist but none is a placeholder")
	}

	// Best-effort: the profile document is the source of truth for display
	// names, the provider copy is cosmetic.
	if err := h.provider.SetDisplayName(ctx, ident.Token, placeholder.DisplayName); err != nil {
		h.logger.Warn("provider display name update failed",
			zap.String("uid", ident.UID),
			zap.Error(err))
	}

	now := time.Now().UTC()
	profile := &models.UserProfile{
		UID:         ident.UID,
		Email:       normalize.Email(ident.Email),
		DisplayName: placeholder.DisplayName,
		Role:        placeholder.Role,
		Position:    placeholder.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.users.Put(ctx, profile); err != nil {
		return nil, err
	}

	h.cleanupPlaceholders(ctx, matches, ident.UID)
	return profile, nil
}

// cleanupPlaceholders deletes every placeholder among the matches. Failures
// are logged; a leftover placeholder is re-deleted on the next retry.
func (h *Handler) cleanupPlaceholders(ctx context.Context, matches []models.UserProfile, keepUID string) {
	for i := range matches {
		m := &matches[i]
		if !m.IsPlaceholder() || m.UID == keepUID {
			continue
		}
		if _, err := h.users.Delete(ctx, m.UID); err != nil {
			h.logger.Warn("placeholder delete failed",
				zap.String("placeholder", m.UID),
				zap.Error(err))
		}
	}
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.DestroySession(w, r)
	jsonutil.NoContent(w)
}

// Me handles GET /api/auth/me. Requires a signed-in session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profile, err := h.users.Get(ctx, u.UID)
	if err != nil {
		h.logger.Error("profile lookup failed", zap.String("uid", u.UID), zap.Error(err))
		jsonutil.InternalError(w, "profile lookup failed")
		return
	}
	if profile == nil {
		jsonutil.Unauthorized(w, "account has no profile")
		return
	}

	jsonutil.OK(w, SessionResponse{User: profile})
}

// UpdateMe handles PATCH /api/auth/me. People may change their own profile
// photo; everything else on the profile stays admin-managed.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "authentication required")
		return
	}

	var in UpdateMeInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if in.PhotoURL == nil {
		jsonutil.BadRequest(w, "photo_url is required")
		return
	}
	// An empty string clears the photo.
	if *in.PhotoURL != "" && !inputval.IsValidPhotoRef(*in.PhotoURL) {
		jsonutil.BadRequest(w, "photo_url must be an http(s) URL or an embedded data:image/ URI")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.users.SaveMerge(ctx, u.UID, userstore.ProfilePatch{PhotoURL: in.PhotoURL}); err != nil {
		h.logger.Error("profile photo update failed", zap.String("uid", u.UID), zap.Error(err))
		jsonutil.InternalError(w, "profile update failed")
		return
	}

	profile, err := h.users.Get(ctx, u.UID)
	if err != nil || profile == nil {
		h.logger.Error("profile reload failed", zap.String("uid", u.UID), zap.Error(err))
		jsonutil.InternalError(w, "profile update failed")
		return
	}
	jsonutil.OK(w, SessionResponse{User: profile})
}
