package schema

// ContentBlogTable represents the 'content.blog' table
type ContentBlogTable struct {
	Table        string
	ID           string
	AuthorID     string
	Title        string
	Slug         string
	Content      string
	SpoilerAlert string
	Visibility   string
	CreatedAt    string
	UpdatedAt    string
}

// ContentBlog is the schema definition for content.blog
var ContentBlog = ContentBlogTable{
	Table:        "content.blog",
	ID:           "id",
	AuthorID:     "authorid",
	Title:        "title",
	Slug:         "slug",
	Content:      "content",
	SpoilerAlert: "spoileralert",
	Visibility:   "visibility",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t ContentBlogTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Slug, t.Content, t.SpoilerAlert,
		t.Visibility, t.CreatedAt, t.UpdatedAt,
	}
}
