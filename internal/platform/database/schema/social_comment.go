package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table        string
	ID           string
	DiscussionID string
	AuthorID     string
	ParentID     string
	Content      string
	CreatedAt    string
	UpdatedAt    string
}

// SocialComment is the schema definition for social.comment.
// ParentID is NULL for top-level comments; replies reference a top-level
// comment in the same discussion (one level of threading only).
var SocialComment = SocialCommentTable{
	Table:        "social.comment",
	ID:           "id",
	DiscussionID: "discussionid",
	AuthorID:     "authorid",
	ParentID:     "parentid",
	Content:      "content",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{
		t.ID, t.DiscussionID, t.AuthorID, t.ParentID, t.Content,
		t.CreatedAt, t.UpdatedAt,
	}
}
