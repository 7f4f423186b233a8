/*
Command hangultune runs the nightly similarity-weight tuning pipeline: it
reads recorded feedback events and the current deployment config, tunes
one environment/bucket's weights against the aggregated training
samples, and writes the updated config back to disk.

# Usage

	hangultune -events events.json -deploy deploy.json -env production -bucket treatment

Events are read from a JSON array of:

	{"timestamp": "...", "query": "...", "selectedKey": "...", "locale": "", "outcome": "clickedResult"}
*/
package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yeojin-dev/hangulsearch/pkg/config"
	"github.com/yeojin-dev/hangulsearch/pkg/deploy"
	"github.com/yeojin-dev/hangulsearch/pkg/feedback"
	"github.com/yeojin-dev/hangulsearch/pkg/tuning"
)

// eventRecord is the JSON-friendly shape events.json entries decode into;
// feedback.Event itself carries no json tags since nothing in the
// library needs to serialize it directly.
type eventRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Query       string    `json:"query"`
	SelectedKey string    `json:"selectedKey"`
	Locale      string    `json:"locale"`
	Outcome     string    `json:"outcome"`
}

func (r eventRecord) toEvent() feedback.Event {
	return feedback.Event{
		Timestamp:   r.Timestamp,
		Query:       r.Query,
		SelectedKey: r.SelectedKey,
		Locale:      r.Locale,
		Outcome:     outcomeFromString(r.Outcome),
	}
}

func outcomeFromString(s string) feedback.Outcome {
	switch s {
	case "acceptedSuggestion":
		return feedback.AcceptedSuggestion
	case "clickedResult":
		return feedback.ClickedResult
	case "noSuggestion":
		return feedback.NoSuggestion
	default:
		return feedback.Unknown
	}
}

func main() {
	eventsPath := flag.String("events", "", "Path to a JSON array of feedback events")
	deployPath := flag.String("deploy", "", "Path to deploy.json (default: from service config)")
	configPath := flag.String("config", "", "Path to config.toml (default: platform config dir)")
	environment := flag.String("env", deploy.Production, "Environment to tune (development|staging|production)")
	bucketFlag := flag.String("bucket", "control", "Target bucket to write tuned weights into (control|treatment)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	if *eventsPath == "" {
		log.Fatal("Missing -events: a JSON array of feedback events is required")
	}

	svcConfig, resolvedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load service config: %v", err)
	}
	log.Debugf("Using config at: %s", resolvedConfigPath)

	resolvedDeployPath := *deployPath
	if resolvedDeployPath == "" {
		resolvedDeployPath = svcConfig.Deploy.ConfigPath
	}

	events, err := loadEvents(*eventsPath)
	if err != nil {
		log.Fatalf("Failed to load events from %s: %v", *eventsPath, err)
	}
	log.Infof("loaded %d feedback events", len(events))

	deployConfig := deploy.LoadOrDefault(resolvedDeployPath)

	bucket := deploy.ControlBucket
	if *bucketFlag == "treatment" {
		bucket = deploy.TreatmentBucket
	}

	opts := tuning.NightlyPipelineOptions{
		Environment:        *environment,
		TargetBucket:       bucket,
		ModelVersionPrefix: svcConfig.Tuning.ModelVersionPrefix,
		SampleOptions: feedback.TrainingSampleOptions{
			MinOccurrences: svcConfig.Tuning.MinOccurrences,
			MaxSamples:     svcConfig.Tuning.MaxSamples,
		},
		Tuning: tuning.SimilarityTuningOptions{
			Limit:                    svcConfig.Tuning.Limit,
			CandidateLimitPerVariant: svcConfig.Tuning.CandidateLimitPerVariant,
			IncludeLayoutVariants:    svcConfig.Tuning.IncludeLayoutVariants,
			MinimumScore:             svcConfig.Tuning.MinimumScore,
			MaxCandidates:            svcConfig.Tuning.MaxCandidates,
			LeaderboardSize:          svcConfig.Tuning.LeaderboardSize,
			Seed:                     uint64(svcConfig.Tuning.Seed),
		},
	}

	updated, result, err := tuning.RunNightlyTuning(events, deployConfig, opts, time.Now())
	if err != nil {
		log.Fatalf("Tuning failed: %v", err)
	}

	if err := deploy.Save(resolvedDeployPath, updated); err != nil {
		log.Fatalf("Failed to save updated deploy config to %s: %v", resolvedDeployPath, err)
	}

	log.Infof("tuned %s/%s: baseline objective %.4f -> best %.4f (modelVersion %s)",
		*environment, bucket, result.BaselineMetrics.Objective(), result.BestMetrics.Objective(), updated.ModelVersion)
	for i, entry := range result.Leaderboard {
		if i >= 5 {
			break
		}
		log.Debugf("leaderboard[%d]: objective=%.4f mrr=%.4f top1=%.4f top3=%.4f",
			i, entry.Objective, entry.Metrics.MRR, entry.Metrics.Top1, entry.Metrics.Top3)
	}
}

func loadEvents(path string) ([]feedback.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []eventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	events := make([]feedback.Event, len(records))
	for i, r := range records {
		events[i] = r.toEvent()
	}
	return events, nil
}
