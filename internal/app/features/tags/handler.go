// Package tags exposes the tag keys for the admin UI's tag suggestions.
package tags

import (
	"context"
	"net/http"

	tagstore "github.com/dalemusser/stratapress/internal/app/store/tags"
	"github.com/dalemusser/stratapress/internal/app/system/jsonutil"
	"github.com/dalemusser/stratapress/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler handles tag requests.
type Handler struct {
	tags   *tagstore.Store
	logger *zap.Logger
}

// NewHandler creates a tags handler.
func NewHandler(tags *tagstore.Store, logger *zap.Logger) *Handler {
	return &Handler{tags: tags, logger: logger}
}

// List handles GET /api/tags.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	keys, err := h.tags.ListKeys(ctx)
	if err != nil {
		h.logger.Error("tag list failed", zap.Error(err))
		jsonutil.InternalError(w, "tag list failed")
		return
	}
	if keys == nil {
		keys = []string{}
	}
	jsonutil.OK(w, map[string]any{"tags": keys})
}
