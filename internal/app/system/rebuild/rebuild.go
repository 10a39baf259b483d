// Package rebuild notifies the public site's build pipeline that published
// content changed. The hook is fire-and-forget: a failed or missing hook
// never fails the article operation that triggered it, so publishing keeps
// working even when the build service is down.
package rebuild

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Trigger posts to a deploy hook URL when published content changes.
type Trigger struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// New creates a Trigger. An empty url disables the hook; Fire then only logs.
func New(url string, logger *zap.Logger) *Trigger {
	return &Trigger{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Enabled reports whether a hook URL is configured.
func (t *Trigger) Enabled() bool {
	return t.url != ""
}

// Fire requests a rebuild in the background and returns immediately. The
// request carries no body; the hook URL itself is the instruction. Failures
// are logged and otherwise ignored.
func (t *Trigger) Fire() {
	if t.url == "" {
		t.logger.Warn("rebuild hook not configured, skipping trigger")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, nil)
		if err != nil {
			t.logger.Error("rebuild hook request build failed", zap.Error(err))
			return
		}

		resp, err := t.client.Do(req)
		if err != nil {
			t.logger.Error("rebuild hook call failed", zap.Error(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			t.logger.Error("rebuild hook rejected", zap.Int("status", resp.StatusCode))
			return
		}
		t.logger.Info("rebuild triggered", zap.Int("status", resp.StatusCode))
	}()
}
