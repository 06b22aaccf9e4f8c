package schema

// ContentChapterTable represents the 'content.chapter' table
type ContentChapterTable struct {
	Table        string
	ID           string
	AuthorID     string
	Title        string
	Content      string
	ChapterNo    string
	SpoilerAlert string
	Visibility   string
	CreatedAt    string
	UpdatedAt    string
}

// ContentChapter is the schema definition for content.chapter, the
// member-authored serialized writing.
var ContentChapter = ContentChapterTable{
	Table:        "content.chapter",
	ID:           "id",
	AuthorID:     "authorid",
	Title:        "title",
	Content:      "content",
	ChapterNo:    "chapterno",
	SpoilerAlert: "spoileralert",
	Visibility:   "visibility",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentChapterTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Content, t.ChapterNo, t.SpoilerAlert,
		t.Visibility, t.CreatedAt, t.UpdatedAt,
	}
}
