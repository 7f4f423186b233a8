// Package tuning evaluates and searches similarity.Weights vectors
// against recorded (query, expectedKey) feedback samples, and drives the
// nightly pipeline that writes tuned weights back into a deployment
// config.
package tuning

import (
	"errors"

	"github.com/yeojin-dev/hangulsearch/pkg/feedback"
	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

// ErrInsufficientSamples is returned when there are no usable training
// samples to evaluate or tune against.
var ErrInsufficientSamples = errors.New("tuning: insufficient training samples")

// Sample is one (query, expectedKey) training pair: a query that should
// have surfaced expectedKey among its similar results.
type Sample struct {
	Query       string
	ExpectedKey string
}

// SamplesFromTrainingSamples projects feedback.TrainingSample into the
// (query, expectedKey) pairs the tuner evaluates against.
func SamplesFromTrainingSamples(ts []feedback.TrainingSample) []Sample {
	samples := make([]Sample, len(ts))
	for i, s := range ts {
		samples[i] = Sample{Query: s.Query, ExpectedKey: s.SelectedKey}
	}
	return samples
}

// SimilarityTuningOptions configures both evaluation and the weight
// search: BaseWeights is the starting point; Limit/CandidateLimitPerVariant
// /IncludeLayoutVariants/MinimumScore configure the ranking call made per
// sample; NgramSize sizes the ephemeral candidate index built from the
// samples' expected keys; MaxCandidates bounds how many weight vectors
// TuneSimilarityWeights considers; LeaderboardSize caps the returned
// leaderboard; Seed drives the deterministic perturbation generator.
type SimilarityTuningOptions struct {
	BaseWeights              similarity.Weights
	CandidateLimitPerVariant int
	IncludeLayoutVariants    bool
	LeaderboardSize          int
	Limit                    int
	MaxCandidates            int
	MinimumScore             float64
	NgramSize                int
	Seed                     uint64
}

// WithDefaults fills zero-valued fields with workable defaults.
func (o SimilarityTuningOptions) WithDefaults() SimilarityTuningOptions {
	out := o
	if out.BaseWeights == (similarity.Weights{}) {
		out.BaseWeights = similarity.DefaultWeights()
	}
	if out.Limit <= 0 {
		out.Limit = 5
	}
	if out.CandidateLimitPerVariant <= 0 {
		out.CandidateLimitPerVariant = out.Limit * 10
	}
	if out.NgramSize != 2 && out.NgramSize != 3 {
		out.NgramSize = 2
	}
	if out.MaxCandidates <= 0 {
		out.MaxCandidates = 64
	}
	if out.LeaderboardSize <= 0 {
		out.LeaderboardSize = 10
	}
	return out
}

// Metrics summarizes ranking quality over a sample set.
type Metrics struct {
	Top1    float64
	Top3    float64
	MRR     float64
	HitRate float64
}

// Objective is the scalar TuneSimilarityWeights optimizes:
// 0.5*mrr + 0.35*top1 + 0.15*top3.
func (m Metrics) Objective() float64 {
	return 0.5*m.MRR + 0.35*m.Top1 + 0.15*m.Top3
}

// LeaderboardEntry is one scored candidate weight vector.
type LeaderboardEntry struct {
	Weights   similarity.Weights
	Metrics   Metrics
	Objective float64
}

// Result is the outcome of TuneSimilarityWeights.
type Result struct {
	BaselineMetrics Metrics
	BestWeights     similarity.Weights
	BestMetrics     Metrics
	Leaderboard     []LeaderboardEntry
}
