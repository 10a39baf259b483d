// internal/app/features/articles/types.go
package articles

// CreateArticleInput is the request body for POST /api/articles.
//
// Author is honored only for admins; staff articles are always attributed to
// the caller's display name.
type CreateArticleInput struct {
	Title     string   `json:"title" validate:"required,max=200" label:"Title"`
	Thumbnail string   `json:"thumbnail" label:"Thumbnail"`
	Content   string   `json:"content" label:"Content"`
	Excerpt   string   `json:"excerpt" validate:"max=500" label:"Excerpt"`
	Author    string   `json:"author" label:"Author"`
	Category  string   `json:"category" validate:"required,category" label:"Category"`
	Tags      []string `json:"tags" label:"Tags"`
	Status    string   `json:"status" validate:"required,articlestatus" label:"Status"`
}

// UpdateArticleInput is the request body for PATCH /api/articles/{id}.
// Absent fields leave the stored value untouched.
type UpdateArticleInput struct {
	Title     *string   `json:"title"`
	Thumbnail *string   `json:"thumbnail"`
	Content   *string   `json:"content"`
	Excerpt   *string   `json:"excerpt"`
	Author    *string   `json:"author"`
	Category  *string   `json:"category"`
	Tags      *[]string `json:"tags"`
	Status    *string   `json:"status"`
}
