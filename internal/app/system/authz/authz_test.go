package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/domain/models"
)

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/articles", nil)

	role, name, uid, ok := UserCtx(r)
	if ok {
		t.Fatal("UserCtx() ok = true for anonymous request")
	}
	if role != "visitor" || name != "" || uid != "" {
		t.Errorf("UserCtx() = (%q, %q, %q), want (visitor, , )", role, name, uid)
	}
	if IsAdmin(r) {
		t.Error("IsAdmin() = true for anonymous request")
	}
	if IsLoggedIn(r) {
		t.Error("IsLoggedIn() = true for anonymous request")
	}
}

func TestUserCtx_RoleLowercased(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{UID: "u1", DisplayName: "Budi", Role: "Admin"})

	role, name, uid, ok := UserCtx(r)
	if !ok {
		t.Fatal("UserCtx() ok = false for authenticated request")
	}
	if role != "admin" || name != "Budi" || uid != "u1" {
		t.Errorf("UserCtx() = (%q, %q, %q), want (admin, Budi, u1)", role, name, uid)
	}
	if !IsAdmin(r) {
		t.Error("IsAdmin() = false for admin user")
	}
	if !CanManageUsers(r) {
		t.Error("CanManageUsers() = false for admin user")
	}
}

func TestCanEditArticle(t *testing.T) {
	article := &models.Article{ID: "a1", Title: "Judul", Author: "Budi"}

	anon := httptest.NewRequest("GET", "/", nil)
	if CanEditArticle(anon, article) {
		t.Error("CanEditArticle() = true for anonymous request")
	}

	admin := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{UID: "u1", DisplayName: "Someone Else", Role: "admin"})
	if !CanEditArticle(admin, article) {
		t.Error("CanEditArticle() = false for admin")
	}

	author := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{UID: "u2", DisplayName: "Budi", Role: "staff"})
	if !CanEditArticle(author, article) {
		t.Error("CanEditArticle() = false for the author")
	}

	other := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{UID: "u3", DisplayName: "Siti", Role: "staff"})
	if CanEditArticle(other, article) {
		t.Error("CanEditArticle() = true for non-author staff")
	}

	if CanEditArticle(author, nil) {
		t.Error("CanEditArticle() = true for nil article and staff user")
	}
}

func TestHasRole(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{UID: "u1", Role: "staff"})

	if !HasRole(r, "admin", "staff") {
		t.Error("HasRole(admin, staff) = false for staff user")
	}
	if HasRole(r, "admin") {
		t.Error("HasRole(admin) = true for staff user")
	}
}
