package domain

// Document is a read-only snapshot of a server-owned document.
type Document struct {
	// ID is the server-assigned identifier.
	ID int

	// Title is the human-readable title.
	Title string

	// Tags holds the tag identifiers attached to the document.
	Tags []string

	// CorrespondentID is nil when no correspondent is assigned.
	CorrespondentID *int
}

// HasCorrespondent reports whether the document points at the given correspondent.
func (d Document) HasCorrespondent(id int) bool {
	return d.CorrespondentID != nil && *d.CorrespondentID == id
}
