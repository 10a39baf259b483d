// Package htmlsanitize provides HTML sanitization for user-submitted article
// fields. It uses bluemonday to strip potentially dangerous HTML.
//
// Article bodies are markdown and stored verbatim; the public site renders
// them through its own pipeline. Excerpts and other short text fields are
// rendered as-is in listings, so they pass through StripTags before storage.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	richPolicy   *bluemonday.Policy
	policyOnce   sync.Once
)

func initPolicies() {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// UGC policy keeps safe formatting (bold, lists, links) while
		// removing scripts and event handlers.
		richPolicy = bluemonday.UGCPolicy()
	})
}

// StripTags removes all HTML from a short text field such as an excerpt,
// leaving plain text. Entities introduced by the sanitizer are left encoded.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// Sanitize cleans HTML input, removing dangerous elements and attributes
// while preserving safe formatting.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	initPolicies()
	return richPolicy.Sanitize(html)
}
