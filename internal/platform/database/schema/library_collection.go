package schema

// LibraryCollectionTable represents the 'library.collection' table
type LibraryCollectionTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Description string
	Tags        string
	Visibility  string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryCollection is the schema definition for library.collection
var LibraryCollection = LibraryCollectionTable{
	Table:       "library.collection",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Description: "description",
	Tags:        "tags",
	Visibility:  "visibility",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t LibraryCollectionTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Description, t.Tags, t.Visibility,
		t.CreatedAt, t.UpdatedAt,
	}
}
