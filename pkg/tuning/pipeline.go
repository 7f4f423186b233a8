package tuning

import (
	"time"

	"github.com/yeojin-dev/hangulsearch/pkg/deploy"
	"github.com/yeojin-dev/hangulsearch/pkg/feedback"
)

// NightlyPipelineOptions configures RunNightlyTuning.
type NightlyPipelineOptions struct {
	Environment        string
	TargetBucket       deploy.Bucket
	ModelVersionPrefix string
	SampleOptions      feedback.TrainingSampleOptions
	Tuning             SimilarityTuningOptions
}

// RunNightlyTuning sanitizes config, aggregates events into training
// samples, tunes the target environment/bucket's base weights against
// them, writes the best weights back into that bucket (enabling the A/B
// policy when targeting treatment), and bumps modelVersion to
// "{prefix}-{env}-{yyyyMMdd-HHmmss UTC}-from-{previous}".
func RunNightlyTuning(events []feedback.Event, config deploy.Config, opts NightlyPipelineOptions, now time.Time) (deploy.Config, Result, error) {
	sanitized := deploy.Sanitize(config)

	env, ok := sanitized.Environments[opts.Environment]
	if !ok {
		return deploy.Config{}, Result{}, deploy.ErrMissingEnvironment
	}

	store := feedback.New(len(events)+1, 0)
	store.RecordBatch(events)
	trainingSamples := store.TrainingSamples(opts.SampleOptions)
	if len(trainingSamples) == 0 {
		return deploy.Config{}, Result{}, ErrInsufficientSamples
	}
	samples := SamplesFromTrainingSamples(trainingSamples)

	baseWeights := env.ControlWeights
	if opts.TargetBucket == deploy.TreatmentBucket && env.TreatmentWeights != nil {
		baseWeights = *env.TreatmentWeights
	}

	tuningOpts := opts.Tuning
	tuningOpts.BaseWeights = baseWeights

	result, err := TuneSimilarityWeights(samples, tuningOpts)
	if err != nil {
		return deploy.Config{}, Result{}, err
	}

	best := result.BestWeights
	switch opts.TargetBucket {
	case deploy.TreatmentBucket:
		env.TreatmentWeights = &best
		env.ABPolicy.Enabled = true
	default:
		env.ControlWeights = best
	}

	previousVersion := sanitized.ModelVersion
	utcNow := now.UTC()
	sanitized.ModelVersion = opts.ModelVersionPrefix + "-" + opts.Environment + "-" +
		utcNow.Format("20060102-150405") + "-from-" + previousVersion
	sanitized.UpdatedAt = utcNow
	sanitized.Environments[opts.Environment] = env

	return deploy.Sanitize(sanitized), result, nil
}
