// Package articles provides the article CRUD endpoints.
//
// Visibility and write access follow authorship: admins see and edit
// everything, staff see and edit only articles attributed to their display
// name. Saving an article with status Published triggers the public site
// rebuild hook.
package articles

import (
	"context"
	"net/http"

	articlestore "github.com/dalemusser/stratapress/internal/app/store/articles"
	tagstore "github.com/dalemusser/stratapress/internal/app/store/tags"
	"github.com/dalemusser/stratapress/internal/app/system/authz"
	"github.com/dalemusser/stratapress/internal/app/system/inputval"
	"github.com/dalemusser/stratapress/internal/app/system/jsonutil"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/app/system/rebuild"
	"github.com/dalemusser/stratapress/internal/app/system/timeouts"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler handles article requests.
type Handler struct {
	articles *articlestore.Store
	tags     *tagstore.Store
	rebuild  *rebuild.Trigger
	logger   *zap.Logger
}

// NewHandler creates an articles handler.
func NewHandler(articles *articlestore.Store, tags *tagstore.Store, rb *rebuild.Trigger, logger *zap.Logger) *Handler {
	return &Handler{
		articles: articles,
		tags:     tags,
		rebuild:  rb,
		logger:   logger,
	}
}

// visibleAuthor resolves the author filter for the request. Admins may ask
// for any author (or all, with an empty filter); staff always get their own
// display name regardless of what they ask for.
func visibleAuthor(r *http.Request) string {
	_, displayName, _, _ := authz.UserCtx(r)
	if authz.IsAdmin(r) {
		return normalize.QueryParam(r.URL.Query().Get("author"))
	}
	return displayName
}

// List handles GET /api/articles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.articles.List(ctx, visibleAuthor(r))
	if err != nil {
		h.logger.Error("article list failed", zap.Error(err))
		jsonutil.InternalError(w, "article list failed")
		return
	}
	if list == nil {
		list = []models.Article{}
	}
	jsonutil.OK(w, map[string]any{"articles": list})
}

// Stats handles GET /api/articles/stats. Staff get counts for their own
// articles; admins get the full counts.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	stats, err := h.articles.CountStats(ctx, visibleAuthor(r))
	if err != nil {
		h.logger.Error("article stats failed", zap.Error(err))
		jsonutil.InternalError(w, "article stats failed")
		return
	}
	jsonutil.OK(w, stats)
}

// Create handles POST /api/articles.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateArticleInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, result.Fields())
		return
	}

	_, displayName, _, _ := authz.UserCtx(r)
	author := displayName
	if authz.IsAdmin(r) && normalize.Name(in.Author) != "" {
		author = normalize.Name(in.Author)
	}

	article := &models.Article{
		Title:     in.Title,
		Thumbnail: in.Thumbnail,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Author:    author,
		Category:  in.Category,
		Tags:      in.Tags,
		Status:    in.Status,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.articles.Create(ctx, article); err != nil {
		h.logger.Error("article create failed", zap.Error(err))
		jsonutil.InternalError(w, "article create failed")
		return
	}

	h.syncTags(ctx, in.Tags)
	if article.Status == models.StatusPublished {
		h.rebuild.Fire()
	}

	jsonutil.Created(w, article)
}

// Get handles GET /api/articles/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	article, err := h.articles.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("article fetch failed", zap.Error(err))
		jsonutil.InternalError(w, "article fetch failed")
		return
	}
	if article == nil {
		jsonutil.NotFound(w, "article not found")
		return
	}
	jsonutil.OK(w, article)
}

// Update handles PATCH /api/articles/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateArticleInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if msg := validatePatch(&in); msg != "" {
		jsonutil.BadRequest(w, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := chi.URLParam(r, "id")
	article, err := h.articles.Get(ctx, id)
	if err != nil {
		h.logger.Error("article fetch failed", zap.Error(err))
		jsonutil.InternalError(w, "article fetch failed")
		return
	}
	if article == nil {
		jsonutil.NotFound(w, "article not found")
		return
	}
	if !authz.CanEditArticle(r, article) {
		jsonutil.Forbidden(w, "not your article")
		return
	}

	patch := articlestore.ArticlePatch{
		Title:     in.Title,
		Thumbnail: in.Thumbnail,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Category:  in.Category,
		Tags:      in.Tags,
		Status:    in.Status,
	}
	// Only admins may reattribute an article.
	if authz.IsAdmin(r) {
		patch.Author = in.Author
	}

	updated, err := h.articles.UpdateMerge(ctx, id, patch)
	if err != nil {
		h.logger.Error("article update failed", zap.Error(err))
		jsonutil.InternalError(w, "article update failed")
		return
	}
	if updated == nil {
		jsonutil.NotFound(w, "article not found")
		return
	}

	if in.Tags != nil {
		h.syncTags(ctx, *in.Tags)
	}
	if updated.Status == models.StatusPublished {
		h.rebuild.Fire()
	}

	jsonutil.OK(w, updated)
}

// Delete handles DELETE /api/articles/{id}. Deleting an already-gone
// article succeeds; only authorship is enforced.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := chi.URLParam(r, "id")
	article, err := h.articles.Get(ctx, id)
	if err != nil {
		h.logger.Error("article fetch failed", zap.Error(err))
		jsonutil.InternalError(w, "article fetch failed")
		return
	}
	if article != nil && !authz.CanEditArticle(r, article) {
		jsonutil.Forbidden(w, "not your article")
		return
	}

	if _, err := h.articles.Delete(ctx, id); err != nil {
		h.logger.Error("article delete failed", zap.Error(err))
		jsonutil.InternalError(w, "article delete failed")
		return
	}
	jsonutil.NoContent(w)
}

// syncTags records the tags in the tag collection. Best-effort: a failed
// sync is logged and never fails the article write.
func (h *Handler) syncTags(ctx context.Context, tags []string) {
	if len(tags) == 0 {
		return
	}
	if err := h.tags.Sync(ctx, tags); err != nil {
		h.logger.Warn("tag sync failed", zap.Error(err))
	}
}

// validatePatch checks the fields present in an update. Returns an error
// message, or "" when the patch is acceptable.
func validatePatch(in *UpdateArticleInput) string {
	if in.Title != nil && normalize.Name(*in.Title) == "" {
		return "title cannot be empty"
	}
	if in.Category != nil && !models.IsValidCategory(*in.Category) {
		return "invalid category"
	}
	if in.Status != nil && !models.IsValidStatus(*in.Status) {
		return "invalid status"
	}
	return ""
}
