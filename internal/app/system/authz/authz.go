// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), display name, UID, and a
// found flag. If no user is present in context it returns "visitor", "", "",
// false, so callers can trust that ok=true means an authenticated user.
func UserCtx(r *http.Request) (role string, displayName string, uid string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.DisplayName, user.UID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsLoggedIn reports whether there is a user in the request context.
func IsLoggedIn(r *http.Request) bool {
	_, ok := auth.CurrentUser(r)
	return ok
}

// HasRole reports whether the current user has one of the specified roles.
func HasRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, allowed := range roles {
		if strings.ToLower(allowed) == role {
			return true
		}
	}
	return false
}

// CanManageUsers reports whether the current user may create, update, or
// delete other users' profiles. Only admins can.
func CanManageUsers(r *http.Request) bool {
	return IsAdmin(r)
}

// CanEditArticle reports whether the current user may modify or delete the
// given article. Admins may edit anything; staff may only edit articles whose
// author field matches their display name. Authorship is by display name,
// not UID, matching how articles record their author.
func CanEditArticle(r *http.Request, a *models.Article) bool {
	role, displayName, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return a != nil && a.Author == displayName
}
