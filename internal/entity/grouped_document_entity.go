package entity

import (
	"time"

	"github.com/google/uuid"
)

// GroupedDocument is one block of a model-proposed grouping response.
// GroupName follows the group_N convention and numbering restarts on
// every run. Rows are append-only.
type GroupedDocument struct {
	Id        uuid.UUID
	GroupName string
	Content   string
	RunId     uuid.UUID
	CreatedAt time.Time
}
