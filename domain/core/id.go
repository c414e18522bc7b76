package core

import (
	"github.com/google/uuid"
)

// RunID identifies a single engine invocation for log correlation. It is
// never persisted and never influences flagging output.
type RunID string

// NewRunID creates a time-ordered, sortable run identifier.
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation.
func (id RunID) String() string {
	return string(id)
}
