package models

import (
	"time"

	"github.com/google/uuid"
)

// Prospect statuses, in pipeline order. The registry does not enforce the
// order; the API boundary only checks membership.
const (
	StatusNew       = "new"
	StatusPitched   = "pitched"
	StatusContacted = "contacted"
	StatusResponded = "responded"
	StatusConverted = "converted"
)

// ProspectStatuses lists the recognized pipeline statuses.
var ProspectStatuses = []string{StatusNew, StatusPitched, StatusContacted, StatusResponded, StatusConverted}

// ValidProspectStatus reports whether s is one of the five pipeline statuses.
func ValidProspectStatus(s string) bool {
	for _, v := range ProspectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Confidence levels assigned by the discovery agent.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Prospect is a discovered business candidate for outreach. The URL is the
// business key: unique across deleted and non-deleted rows alike.
type Prospect struct {
	ID           uuid.UUID  `json:"id"`
	SearchID     *uuid.UUID `json:"searchId,omitempty"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	City         *string    `json:"city,omitempty"`
	LocationText string     `json:"locationText"`
	IsLocal      bool       `json:"isLocal"`
	Confidence   string     `json:"confidence"`
	Sources      []string   `json:"sources"`
	Notes        *string    `json:"notes,omitempty"`
	Status       string     `json:"status"`
	IsDeleted    bool       `json:"isDeleted"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// PipelineStats counts non-deleted prospects per status bucket. Total counts
// every non-deleted prospect; unknown statuses increment Total but no bucket.
type PipelineStats struct {
	New       int `json:"new"`
	Pitched   int `json:"pitched"`
	Contacted int `json:"contacted"`
	Responded int `json:"responded"`
	Converted int `json:"converted"`
	Total     int `json:"total"`
}
