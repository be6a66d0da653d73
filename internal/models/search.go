package models

import (
	"time"

	"github.com/google/uuid"
)

// Search records the metadata of one discovery run. Searches are immutable:
// they are created by the intake endpoint and never updated or deleted.
type Search struct {
	ID                 uuid.UUID `json:"id"`
	Industry           string    `json:"industry"`
	Location           string    `json:"location"`
	Count              int       `json:"count"`
	LocalOnly          bool      `json:"localOnly"`
	TotalFound         int       `json:"totalFound"`
	AfterDeduplication int       `json:"afterDeduplication"`
	LocalCount         int       `json:"localCount"`
	ProspectsReturned  int       `json:"prospectsReturned"`
	SearchQueries      []string  `json:"searchQueries"`
	CreatedAt          time.Time `json:"createdAt"`
}
