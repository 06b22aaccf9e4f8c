package schema

// LibraryCollectionBookTable represents the 'library.collectionbook' table
type LibraryCollectionBookTable struct {
	Table        string
	CollectionID string
	VolumeID     string
	AddedAt      string
}

// LibraryCollectionBook is the schema definition for library.collectionbook,
// the membership table between collections and external volume ids.
// Primary key is (collectionid, volumeid), which makes add idempotent via
// ON CONFLICT DO NOTHING.
var LibraryCollectionBook = LibraryCollectionBookTable{
	Table:        "library.collectionbook",
	CollectionID: "collectionid",
	VolumeID:     "volumeid",
	AddedAt:      "addedat",
}

func (t LibraryCollectionBookTable) Columns() []string {
	return []string{t.CollectionID, t.VolumeID, t.AddedAt}
}
