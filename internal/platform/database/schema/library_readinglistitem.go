package schema

// LibraryReadingListItemTable represents the 'library.readinglistitem' table
type LibraryReadingListItemTable struct {
	Table       string
	ID          string
	UserID      string
	VolumeID    string
	Status      string
	StartedAt   string
	CompletedAt string
	Visibility  string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryReadingListItem is the schema definition for library.readinglistitem
var LibraryReadingListItem = LibraryReadingListItemTable{
	Table:       "library.readinglistitem",
	ID:          "id",
	UserID:      "userid",
	VolumeID:    "volumeid",
	Status:      "status",
	StartedAt:   "startedat",
	CompletedAt: "completedat",
	Visibility:  "visibility",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t LibraryReadingListItemTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.VolumeID, t.Status, t.StartedAt, t.CompletedAt,
		t.Visibility, t.CreatedAt, t.UpdatedAt,
	}
}
