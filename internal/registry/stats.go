package registry

import (
	"context"

	"github.com/david/prospect-tracker/internal/models"
)

// Aggregator composes the read-side pipeline overview. No caching: every call
// is a fresh scan of both collections, which is fine at prospecting scale.
type Aggregator struct {
	prospects *ProspectRegistry
	pitches   *PitchRegistry
}

func NewAggregator(prospects *ProspectRegistry, pitches *PitchRegistry) *Aggregator {
	return &Aggregator{prospects: prospects, pitches: pitches}
}

// Overview returns pipeline counts for prospects and the pitch summary.
func (a *Aggregator) Overview(ctx context.Context) (models.PipelineOverview, error) {
	prospectStats, err := a.prospects.PipelineStats(ctx)
	if err != nil {
		return models.PipelineOverview{}, err
	}
	pitchStats, err := a.pitches.Stats(ctx)
	if err != nil {
		return models.PipelineOverview{}, err
	}
	return models.PipelineOverview{Prospects: prospectStats, Pitches: pitchStats}, nil
}
