package registry

import (
	"context"

	"github.com/google/uuid"
)

// Intake is the create-search-and-prospects command: one search record plus a
// deduplicated fan-out of its prospects. Duplicate detection happens here,
// once per url, before batching; CreateBatch itself inserts unconditionally.
type Intake struct {
	searches  *SearchRegistry
	prospects *ProspectRegistry
}

func NewIntake(searches *SearchRegistry, prospects *ProspectRegistry) *Intake {
	return &Intake{searches: searches, prospects: prospects}
}

// IntakeSearch mirrors SearchInput with pointers where the boundary has to
// tell "absent" from zero. Industry, Location and Count are required; the
// counters default to 0 and ProspectsReturned to the submitted batch size.
type IntakeSearch struct {
	Industry           string   `json:"industry"`
	Location           string   `json:"location"`
	Count              *int     `json:"count"`
	LocalOnly          bool     `json:"localOnly"`
	TotalFound         int      `json:"totalFound"`
	AfterDeduplication int      `json:"afterDeduplication"`
	LocalCount         int      `json:"localCount"`
	ProspectsReturned  *int     `json:"prospectsReturned"`
	SearchQueries      []string `json:"searchQueries"`
}

// IntakeRequest is the payload of one discovery run submission.
type IntakeRequest struct {
	Search    *IntakeSearch   `json:"search"`
	Prospects []ProspectInput `json:"prospects"`
}

// IntakeResult reports what the command did. DuplicateURLs lists every
// submitted url that was skipped because a prospect, deleted or not, already
// holds it — or because an earlier entry of the same batch claimed it first.
type IntakeResult struct {
	SearchID          uuid.UUID `json:"searchId"`
	ProspectsCreated  int       `json:"prospectsCreated"`
	DuplicatesSkipped int       `json:"duplicatesSkipped"`
	DuplicateURLs     []string  `json:"duplicateUrls"`
}

func (req *IntakeRequest) validate() error {
	if req.Search == nil {
		return missingField("search")
	}
	if req.Prospects == nil {
		return missingField("prospects")
	}
	if req.Search.Industry == "" {
		return missingField("search.industry")
	}
	if req.Search.Location == "" {
		return missingField("search.location")
	}
	if req.Search.Count == nil {
		return missingField("search.count")
	}
	for _, p := range req.Prospects {
		if p.Name == "" {
			return &ValidationError{Field: "prospects.name", Reason: "is required on every prospect"}
		}
		if p.URL == "" {
			return &ValidationError{Field: "prospects.url", Reason: "is required on every prospect"}
		}
	}
	return nil
}

// Run validates the request, records the search, and inserts every prospect
// whose url is not already registered. Retrying the same payload degrades to
// duplicates skipped rather than double-inserting; the search record itself
// is appended on every call.
func (c *Intake) Run(ctx context.Context, req IntakeRequest) (IntakeResult, error) {
	if err := req.validate(); err != nil {
		return IntakeResult{}, err
	}

	prospectsReturned := len(req.Prospects)
	if req.Search.ProspectsReturned != nil {
		prospectsReturned = *req.Search.ProspectsReturned
	}

	searchID, err := c.searches.Record(ctx, SearchInput{
		Industry:           req.Search.Industry,
		Location:           req.Search.Location,
		Count:              *req.Search.Count,
		LocalOnly:          req.Search.LocalOnly,
		TotalFound:         req.Search.TotalFound,
		AfterDeduplication: req.Search.AfterDeduplication,
		LocalCount:         req.Search.LocalCount,
		ProspectsReturned:  prospectsReturned,
		SearchQueries:      req.Search.SearchQueries,
	})
	if err != nil {
		return IntakeResult{}, err
	}

	result := IntakeResult{SearchID: searchID, DuplicateURLs: []string{}}

	var toCreate []ProspectInput
	seen := make(map[string]bool, len(req.Prospects))
	for _, p := range req.Prospects {
		if seen[p.URL] {
			result.DuplicateURLs = append(result.DuplicateURLs, p.URL)
			continue
		}
		seen[p.URL] = true

		existing, err := c.prospects.FindByURL(ctx, p.URL)
		if err != nil {
			return IntakeResult{}, storeErr("get prospect by url", err)
		}
		if existing != nil {
			result.DuplicateURLs = append(result.DuplicateURLs, p.URL)
			continue
		}
		toCreate = append(toCreate, p)
	}
	result.DuplicatesSkipped = len(result.DuplicateURLs)

	if len(toCreate) > 0 {
		ids, err := c.prospects.CreateBatch(ctx, &searchID, toCreate)
		result.ProspectsCreated = len(ids)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}
