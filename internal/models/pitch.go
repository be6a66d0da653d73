package models

import (
	"time"

	"github.com/google/uuid"
)

// PitchLocation is the loosely structured address block on a pitch.
type PitchLocation struct {
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Area    *string `json:"area,omitempty"`
}

// PitchContact holds whatever contact channels were discovered for the business.
type PitchContact struct {
	Phone    *string `json:"phone,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
	Email    *string `json:"email,omitempty"`
	Form     *string `json:"form,omitempty"`
	Facebook *string `json:"facebook,omitempty"`
}

// Service is one advertised offering, price as displayed on the site.
type Service struct {
	Name  string  `json:"name"`
	Price *string `json:"price,omitempty"`
}

// PitchOption is one generated outreach message variant.
type PitchOption struct {
	Angle       string `json:"angle"` // "pain-point", "opportunity", "social-proof"
	SubjectLine string `json:"subjectLine"`
	Message     string `json:"message"`
	WordCount   int    `json:"wordCount"`
}

// OutreachAlternative is a fallback channel beyond the primary recommendation.
type OutreachAlternative struct {
	Channel string  `json:"channel"`
	Link    string  `json:"link"`
	Note    *string `json:"note,omitempty"`
}

// Outreach is the recommended delivery strategy for a pitch.
type Outreach struct {
	PrimaryChannel         string                `json:"primaryChannel"`
	PrimaryLink            string                `json:"primaryLink"`
	RecommendedSubjectLine string                `json:"recommendedSubjectLine"`
	Reasoning              string                `json:"reasoning"`
	Alternatives           []OutreachAlternative `json:"alternatives"`
}

// PitchSource records where a piece of pitch evidence was found.
type PitchSource struct {
	Page  string `json:"page"`
	URL   string `json:"url"`
	Found string `json:"found"`
}

// Pitch is generated outreach content for one business. The website is the
// business key: at most one pitch per website, deleted rows included.
type Pitch struct {
	ID                     uuid.UUID     `json:"id"`
	ProspectID             *uuid.UUID    `json:"prospectId,omitempty"`
	CompanyName            string        `json:"companyName"`
	Owner                  *string       `json:"owner,omitempty"`
	Website                string        `json:"website"`
	Industry               string        `json:"industry"`
	IsLocal                bool          `json:"isLocal"`
	Location               PitchLocation `json:"location"`
	Contact                PitchContact  `json:"contact"`
	Services               []Service     `json:"services"`
	PainPoints             []string      `json:"painPoints"`
	PitchOptions           []PitchOption `json:"pitchOptions"`
	RecommendedPitch       int           `json:"recommendedPitch"`
	RecommendedPitchReason string        `json:"recommendedPitchReason"`
	RecommendedChannel     string        `json:"recommendedChannel"`
	Outreach               Outreach      `json:"outreach"`
	Sources                []PitchSource `json:"sources"`
	CustomInstructions     *string       `json:"customInstructions,omitempty"`
	IsDeleted              bool          `json:"isDeleted"`
	CreatedAt              time.Time     `json:"createdAt"`
}

// PitchWithStatus is a pitch listing row enriched with the current status of
// its linked prospect. ProspectStatus is null when the pitch is unlinked or
// the linked prospect no longer exists.
type PitchWithStatus struct {
	Pitch
	ProspectStatus *string `json:"prospectStatus"`
}

// PitchStats summarizes non-deleted pitches. Industries preserves scan order.
type PitchStats struct {
	Total      int      `json:"total"`
	Local      int      `json:"local"`
	NonLocal   int      `json:"nonLocal"`
	Industries []string `json:"industries"`
}

// PipelineOverview is the read-side rollup served by the stats endpoint.
type PipelineOverview struct {
	Prospects PipelineStats `json:"prospects"`
	Pitches   PitchStats    `json:"pitches"`
}
