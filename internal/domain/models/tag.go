// internal/domain/models/tag.go
package models

// Tag is a free-text article tag. The lowercased text is the document key,
// which makes tag uniqueness case-insensitive. Name keeps the casing of the
// tag's first use for display.
//
// UsageCount is always merge-written as the literal value 1 and is therefore
// not a real counter. Read paths must not rely on it. This preserves the
// behavior the public site was built against.
type Tag struct {
	Key        string `bson:"_id" json:"key"`
	Name       string `bson:"name" json:"name"`
	UsageCount int    `bson:"usage_count" json:"usage_count"`
}
