package tags

import (
	"net/http"
	"testing"
	"time"

	tagstore "github.com/dalemusser/stratapress/internal/app/store/tags"
	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/testutil"
	"go.uber.org/zap"
)

const testSessionKey = "ffeeddccbbaa99887766554433221100"

func newRouter(t *testing.T) (http.Handler, *tagstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := tagstore.New(db)

	sessions, err := auth.NewSessionManager(testSessionKey, "", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	return Routes(NewHandler(store, zap.NewNop()), sessions), store
}

func TestList(t *testing.T) {
	router, store := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Sync(ctx, []string{"Tech", "AI"}); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.StaffUser()))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Tags []string `json:"tags"`
	}
	rec.DecodeJSON(t, &resp)
	if len(resp.Tags) != 2 || resp.Tags[0] != "ai" || resp.Tags[1] != "tech" {
		t.Errorf("tags = %v, want [ai tech]", resp.Tags)
	}
}

func TestList_RequiresSession(t *testing.T) {
	router, _ := newRouter(t)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestList_Empty(t *testing.T) {
	router, _ := newRouter(t)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.StaffUser()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"tags":[]`)
}
