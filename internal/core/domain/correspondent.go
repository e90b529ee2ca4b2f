package domain

import "fmt"

// Correspondent is a named party documents are attributed to.
// Identity is ID; names are not assumed to be unique.
type Correspondent struct {
	// ID is the server-assigned identifier.
	ID int

	// Name is the display name.
	Name string

	// DocumentCount is the number of documents referring to this correspondent
	// at the time the snapshot was fetched.
	DocumentCount int
}

// String renders the correspondent as "Name (ID)".
func (c Correspondent) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.ID)
}
