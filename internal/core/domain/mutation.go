package domain

import "fmt"

// Mutation is a state-changing server operation.
// The set of variants is closed: only types in this package implement it.
type Mutation interface {
	// Describe returns a one-line human description of the change.
	Describe() string

	isMutation()
}

// SetCorrespondent reassigns many documents to one correspondent in a single call.
type SetCorrespondent struct {
	DocumentIDs   []int
	Correspondent Correspondent
}

// Describe implements Mutation.
func (m SetCorrespondent) Describe() string {
	return fmt.Sprintf("set correspondent of %d documents to %s", len(m.DocumentIDs), m.Correspondent)
}

func (SetCorrespondent) isMutation() {}

// DeleteCorrespondent removes a correspondent.
type DeleteCorrespondent struct {
	Correspondent Correspondent
}

// Describe implements Mutation.
func (m DeleteCorrespondent) Describe() string {
	return fmt.Sprintf("delete correspondent %s", m.Correspondent)
}

func (DeleteCorrespondent) isMutation() {}

// SubmitDocument uploads a local file for ingestion.
type SubmitDocument struct {
	Path string
}

// Describe implements Mutation.
func (m SubmitDocument) Describe() string {
	return fmt.Sprintf("upload %s", m.Path)
}

func (SubmitDocument) isMutation() {}

// MutationResult describes what applying a mutation did.
type MutationResult struct {
	// Skipped is true when no-op mode suppressed the call.
	Skipped bool

	// TaskHandle is set for SubmitDocument when the server accepted the file.
	TaskHandle string
}
