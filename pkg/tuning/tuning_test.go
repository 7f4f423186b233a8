package tuning

import (
	"testing"
	"time"

	"github.com/yeojin-dev/hangulsearch/pkg/deploy"
	"github.com/yeojin-dev/hangulsearch/pkg/feedback"
	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

func sampleSet() []Sample {
	return []Sample{
		{Query: "검삭", ExpectedKey: "검색"},
		{Query: "개발", ExpectedKey: "개발"},
		{Query: "결재", ExpectedKey: "결제"},
	}
}

func tuningOpts() SimilarityTuningOptions {
	return SimilarityTuningOptions{
		BaseWeights:     similarity.DefaultWeights(),
		Limit:           3,
		MaxCandidates:   12,
		LeaderboardSize: 5,
		Seed:            42,
		MinimumScore:    0.0,
	}
}

func TestEvaluateSimilarityReturnsMetricsInRange(t *testing.T) {
	metrics, err := EvaluateSimilarity(sampleSet(), tuningOpts())
	if err != nil {
		t.Fatalf("EvaluateSimilarity error: %v", err)
	}
	for _, v := range []float64{metrics.Top1, metrics.Top3, metrics.MRR, metrics.HitRate} {
		if v < 0 || v > 1 {
			t.Fatalf("metric out of [0,1]: %+v", metrics)
		}
	}
}

func TestEvaluateSimilarityRejectsEmptySamples(t *testing.T) {
	_, err := EvaluateSimilarity(nil, tuningOpts())
	if err != ErrInsufficientSamples {
		t.Fatalf("EvaluateSimilarity error = %v; want ErrInsufficientSamples", err)
	}
}

func TestTuneSimilarityWeightsImprovesOrMatchesBaseline(t *testing.T) {
	result, err := TuneSimilarityWeights(sampleSet(), tuningOpts())
	if err != nil {
		t.Fatalf("TuneSimilarityWeights error: %v", err)
	}
	if result.BestMetrics.Objective() < result.BaselineMetrics.Objective() {
		t.Fatalf("best objective %v worse than baseline %v", result.BestMetrics.Objective(), result.BaselineMetrics.Objective())
	}
	if len(result.Leaderboard) == 0 {
		t.Fatalf("TuneSimilarityWeights returned empty leaderboard")
	}
}

func TestTuneSimilarityWeightsLeaderboardSortedByObjectiveDesc(t *testing.T) {
	result, err := TuneSimilarityWeights(sampleSet(), tuningOpts())
	if err != nil {
		t.Fatalf("TuneSimilarityWeights error: %v", err)
	}
	for i := 1; i < len(result.Leaderboard); i++ {
		if result.Leaderboard[i].Objective > result.Leaderboard[i-1].Objective {
			t.Fatalf("leaderboard not sorted desc at index %d: %+v", i, result.Leaderboard)
		}
	}
}

func TestTuneSimilarityWeightsDeterministicForFixedSeed(t *testing.T) {
	a, errA := TuneSimilarityWeights(sampleSet(), tuningOpts())
	b, errB := TuneSimilarityWeights(sampleSet(), tuningOpts())
	if errA != nil || errB != nil {
		t.Fatalf("TuneSimilarityWeights errors: %v, %v", errA, errB)
	}
	if a.BestWeights != b.BestWeights {
		t.Fatalf("tuning not deterministic for fixed seed: %+v vs %+v", a.BestWeights, b.BestWeights)
	}
}

func TestCandidateWeightVectorsRespectsMaxCandidates(t *testing.T) {
	opts := tuningOpts()
	opts.MaxCandidates = 5
	candidates := candidateWeightVectors(opts)
	if len(candidates) > 5 {
		t.Fatalf("candidateWeightVectors returned %d; want <= 5", len(candidates))
	}
}

func TestCandidateWeightVectorsAreNonNegative(t *testing.T) {
	candidates := candidateWeightVectors(tuningOpts())
	for _, w := range candidates {
		if w.EditDistance < 0 || w.Jaccard < 0 || w.Keyboard < 0 || w.Jamo < 0 || w.Exact < 0 || w.Prefix < 0 {
			t.Fatalf("negative weight in candidate: %+v", w)
		}
	}
}

func TestCandidateWeightVectorsDeduplicated(t *testing.T) {
	candidates := candidateWeightVectors(tuningOpts())
	seen := make(map[string]bool)
	for _, w := range candidates {
		fp := fingerprint(w)
		if seen[fp] {
			t.Fatalf("duplicate candidate fingerprint %q", fp)
		}
		seen[fp] = true
	}
}

func TestLCGDeterministicSequence(t *testing.T) {
	a := newLCG(7)
	b := newLCG(7)
	for i := 0; i < 5; i++ {
		if a.next() != b.next() {
			t.Fatalf("lcg sequences diverged at step %d", i)
		}
	}
}

func TestRunNightlyTuningBumpsModelVersionAndWritesWeights(t *testing.T) {
	now := time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)
	events := []feedback.Event{
		{Query: "검삭", SelectedKey: "검색", Timestamp: now.Add(-time.Minute), Outcome: feedback.ClickedResult},
		{Query: "검삭", SelectedKey: "검색", Timestamp: now.Add(-2 * time.Minute), Outcome: feedback.ClickedResult},
		{Query: "개발", SelectedKey: "개발", Timestamp: now.Add(-time.Minute), Outcome: feedback.ClickedResult},
	}
	cfg := deploy.Sanitize(deploy.Config{ModelVersion: "baseline"})

	out, result, err := RunNightlyTuning(events, cfg, NightlyPipelineOptions{
		Environment:        deploy.Development,
		TargetBucket:       deploy.ControlBucket,
		ModelVersionPrefix: "nightly",
		SampleOptions:      feedback.TrainingSampleOptions{MinOccurrences: 1},
		Tuning:             tuningOpts(),
	}, now)
	if err != nil {
		t.Fatalf("RunNightlyTuning error: %v", err)
	}
	if out.ModelVersion == "baseline" || out.ModelVersion == "" {
		t.Fatalf("ModelVersion not bumped: %q", out.ModelVersion)
	}
	if out.Environments[deploy.Development].ControlWeights != result.BestWeights {
		t.Fatalf("control weights not written back: %+v vs %+v", out.Environments[deploy.Development].ControlWeights, result.BestWeights)
	}
}

func TestRunNightlyTuningTreatmentEnablesABPolicy(t *testing.T) {
	now := time.Now()
	events := []feedback.Event{
		{Query: "검삭", SelectedKey: "검색", Timestamp: now, Outcome: feedback.ClickedResult},
		{Query: "개발", SelectedKey: "개발", Timestamp: now, Outcome: feedback.ClickedResult},
	}
	cfg := deploy.DefaultConfig()

	out, _, err := RunNightlyTuning(events, cfg, NightlyPipelineOptions{
		Environment:        deploy.Staging,
		TargetBucket:       deploy.TreatmentBucket,
		ModelVersionPrefix: "nightly",
		Tuning:             tuningOpts(),
	}, now)
	if err != nil {
		t.Fatalf("RunNightlyTuning error: %v", err)
	}
	env := out.Environments[deploy.Staging]
	if env.TreatmentWeights == nil {
		t.Fatalf("treatment weights not written")
	}
	if !env.ABPolicy.Enabled {
		t.Fatalf("AB policy not enabled for treatment target")
	}
}

func TestRunNightlyTuningMissingEnvironment(t *testing.T) {
	_, _, err := RunNightlyTuning(nil, deploy.DefaultConfig(), NightlyPipelineOptions{
		Environment: "nope",
	}, time.Now())
	if err != deploy.ErrMissingEnvironment {
		t.Fatalf("RunNightlyTuning error = %v; want ErrMissingEnvironment", err)
	}
}

func TestRunNightlyTuningInsufficientSamples(t *testing.T) {
	_, _, err := RunNightlyTuning(nil, deploy.DefaultConfig(), NightlyPipelineOptions{
		Environment: deploy.Development,
	}, time.Now())
	if err != ErrInsufficientSamples {
		t.Fatalf("RunNightlyTuning error = %v; want ErrInsufficientSamples", err)
	}
}
