package schema

// SocialDiscussionTable represents the 'social.discussion' table
type SocialDiscussionTable struct {
	Table        string
	ID           string
	AuthorID     string
	Title        string
	Content      string
	SpoilerAlert string
	Visibility   string
	CreatedAt    string
	UpdatedAt    string
}

// SocialDiscussion is the schema definition for social.discussion
var SocialDiscussion = SocialDiscussionTable{
	Table:        "social.discussion",
	ID:           "id",
	AuthorID:     "authorid",
	Title:        "title",
	Content:      "content",
	SpoilerAlert: "spoileralert",
	Visibility:   "visibility",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t SocialDiscussionTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Content, t.SpoilerAlert,
		t.Visibility, t.CreatedAt, t.UpdatedAt,
	}
}
