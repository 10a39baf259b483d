package articles

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	articlestore "github.com/dalemusser/stratapress/internal/app/store/articles"
	tagstore "github.com/dalemusser/stratapress/internal/app/store/tags"
	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/app/system/rebuild"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"github.com/dalemusser/stratapress/internal/testutil"
	"go.uber.org/zap"
)

const testSessionKey = "fedcba9876543210fedcba9876543210"

type fixture struct {
	router   http.Handler
	articles *articlestore.Store
	tags     *tagstore.Store
	hookHits *atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	var hits atomic.Int64
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(hook.Close)

	sessions, err := auth.NewSessionManager(testSessionKey, "", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	articles := articlestore.New(db)
	tags := tagstore.New(db)
	h := NewHandler(articles, tags, rebuild.New(hook.URL, zap.NewNop()), zap.NewNop())

	return &fixture{
		router:   Routes(h, sessions),
		articles: articles,
		tags:     tags,
		hookHits: &hits,
	}
}

func (f *fixture) do(t *testing.T, req *http.Request) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec.ResponseRecorder, req)
	return rec
}

func (f *fixture) waitForHook(t *testing.T, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f.hookHits.Load() >= want {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	// Settle, then check the exact count so extra fires are caught too
	time.Sleep(50 * time.Millisecond)
	if got := f.hookHits.Load(); got != want {
		t.Fatalf("rebuild hook fired %d times, want %d", got, want)
	}
}

func seed(t *testing.T, f *fixture, title, author, status string) *models.Article {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	a := &models.Article{
		Title:    title,
		Content:  "isi",
		Author:   author,
		Category: models.CategoryOpini,
		Status:   status,
	}
	if err := f.articles.Create(ctx, a); err != nil {
		t.Fatalf("seed Create() error = %v", err)
	}
	return a
}

func TestRoutes_RequireSession(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestList_Visibility(t *testing.T) {
	f := newFixture(t)
	staff := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}
	admin := testutil.AdminUser()

	seed(t, f, "Milik Budi", "Budi", models.StatusDraft)
	seed(t, f, "Milik Siti", "Siti", models.StatusDraft)

	var resp struct {
		Articles []models.Article `json:"articles"`
	}

	// Staff see only their own articles, whatever they ask for
	rec := f.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/?author=Siti", staff))
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if len(resp.Articles) != 1 || resp.Articles[0].Author != "Budi" {
		t.Errorf("staff list = %+v, want only Budi's articles", resp.Articles)
	}

	// Admins see everything by default
	rec = f.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/", admin))
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if len(resp.Articles) != 2 {
		t.Errorf("admin list returned %d articles, want 2", len(resp.Articles))
	}

	// Admins can filter by author
	rec = f.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/?author=Siti", admin))
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if len(resp.Articles) != 1 || resp.Articles[0].Author != "Siti" {
		t.Errorf("admin filtered list = %+v, want only Siti's articles", resp.Articles)
	}
}

func TestCreateDraftThenPublish_TagsAndHook(t *testing.T) {
	f := newFixture(t)
	staff := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Draft with messy tags: normalized in the article, synced once, no hook
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", CreateArticleInput{
		Title:    "Hello, World!  Foo",
		Content:  "isi artikel",
		Category: models.CategoryOpini,
		Tags:     []string{"A", "a", " A "},
		Status:   models.StatusDraft,
	})
	rec := f.do(t, testutil.WithUser(req, staff))
	rec.AssertStatus(t, http.StatusCreated)

	var created models.Article
	rec.DecodeJSON(t, &created)
	if created.Slug != "hello-world-foo" {
		t.Errorf("slug = %q, want hello-world-foo", created.Slug)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "a" {
		t.Errorf("tags = %v, want [a]", created.Tags)
	}
	if created.Author != "Budi" {
		t.Errorf("author = %q, want caller's display name", created.Author)
	}

	keys, err := f.tags.ListKeys(ctx)
	if err != nil {
		t.Fatalf("ListKeys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "a" {
		t.Errorf("tag keys = %v, want [a]", keys)
	}
	f.waitForHook(t, 0)

	// Publishing fires the hook exactly once
	status := models.StatusPublished
	patchReq := testutil.NewJSONRequest(t, http.MethodPatch, "/"+created.ID, UpdateArticleInput{Status: &status})
	rec = f.do(t, testutil.WithUser(patchReq, staff))
	rec.AssertStatus(t, http.StatusOK)

	var updated models.Article
	rec.DecodeJSON(t, &updated)
	if updated.Status != models.StatusPublished {
		t.Errorf("status = %q, want Published", updated.Status)
	}
	f.waitForHook(t, 1)
}

func TestCreate_PublishedFiresHook(t *testing.T) {
	f := newFixture(t)
	staff := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", CreateArticleInput{
		Title:    "Langsung Terbit",
		Category: models.CategoryBerita,
		Status:   models.StatusPublished,
	})
	rec := f.do(t, testutil.WithUser(req, staff))
	rec.AssertStatus(t, http.StatusCreated)
	f.waitForHook(t, 1)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	staff := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", CreateArticleInput{
		Title:    "",
		Category: "NotACategory",
		Status:   models.StatusDraft,
	})
	rec := f.do(t, testutil.WithUser(req, staff))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_AdminMayAttribute(t *testing.T) {
	f := newFixture(t)
	admin := testutil.AdminUser()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", CreateArticleInput{
		Title:    "Atas Nama",
		Author:   "Siti",
		Category: models.CategoryOpini,
		Status:   models.StatusDraft,
	})
	rec := f.do(t, testutil.WithUser(req, admin))
	rec.AssertStatus(t, http.StatusCreated)

	var created models.Article
	rec.DecodeJSON(t, &created)
	if created.Author != "Siti" {
		t.Errorf("author = %q, want Siti", created.Author)
	}
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)
	staff := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}

	rec := f.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/no-such-id", staff))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestUpdate_Authorship(t *testing.T) {
	f := newFixture(t)
	a := seed(t, f, "Milik Siti", "Siti", models.StatusDraft)

	title := "Diubah"
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/"+a.ID, UpdateArticleInput{Title: &title})

	// Other staff may not edit
	other := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}
	rec := f.do(t, testutil.WithUser(req, other))
	rec.AssertStatus(t, http.StatusForbidden)

	// The author may
	author := testutil.TestUser{UID: "u-siti", Name: "Siti", Role: "staff"}
	req = testutil.NewJSONRequest(t, http.MethodPatch, "/"+a.ID, UpdateArticleInput{Title: &title})
	rec = f.do(t, testutil.WithUser(req, author))
	rec.AssertStatus(t, http.StatusOK)

	var updated models.Article
	rec.DecodeJSON(t, &updated)
	if updated.Title != "Diubah" || updated.Slug != "diubah" {
		t.Errorf("updated = %+v, want new title and slug", updated)
	}
}

func TestUpdate_StaffCannotReattribute(t *testing.T) {
	f := newFixture(t)
	a := seed(t, f, "Milik Budi", "Budi", models.StatusDraft)

	newAuthor := "Siti"
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/"+a.ID, UpdateArticleInput{Author: &newAuthor})
	author := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}
	rec := f.do(t, testutil.WithUser(req, author))
	rec.AssertStatus(t, http.StatusOK)

	var updated models.Article
	rec.DecodeJSON(t, &updated)
	if updated.Author != "Budi" {
		t.Errorf("author = %q, staff reattribution should be ignored", updated.Author)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	a := seed(t, f, "Akan Dihapus", "Budi", models.StatusDraft)

	other := testutil.TestUser{UID: "u-siti", Name: "Siti", Role: "staff"}
	rec := f.do(t, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+a.ID, other))
	rec.AssertStatus(t, http.StatusForbidden)

	author := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}
	rec = f.do(t, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+a.ID, author))
	rec.AssertStatus(t, http.StatusNoContent)

	// Deleting again is still a success
	rec = f.do(t, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+a.ID, author))
	rec.AssertStatus(t, http.StatusNoContent)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	seed(t, f, "Satu", "Budi", models.StatusPublished)
	seed(t, f, "Dua", "Budi", models.StatusDraft)
	seed(t, f, "Tiga", "Siti", models.StatusPublished)

	var stats articlestore.Stats

	staff := testutil.TestUser{UID: "u-budi", Name: "Budi", Role: "staff"}
	rec := f.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/stats", staff))
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &stats)
	if stats.Total != 2 || stats.Published != 1 || stats.Drafts != 1 {
		t.Errorf("staff stats = %+v, want {2 1 1}", stats)
	}

	admin := testutil.AdminUser()
	rec = f.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/stats", admin))
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &stats)
	if stats.Total != 3 || stats.Published != 2 || stats.Drafts != 1 {
		t.Errorf("admin stats = %+v, want {3 2 1}", stats)
	}
}
