// Package deploy resolves per-request similarity weights through an A/B
// bucketing policy, sanitizes deployment configuration, and persists it as
// JSON.
package deploy

import (
	"errors"
	"time"

	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

// ErrMissingEnvironment is returned by Resolve when the requested
// environment is absent from the sanitized configuration.
var ErrMissingEnvironment = errors.New("deploy: environment not found")

// ErrMissingFile is returned by LoadStrict when the config file does not
// exist.
var ErrMissingFile = errors.New("deploy: config file not found")

const (
	defaultSchemaVersion = 1
	defaultModelVersion  = "baseline"
	defaultSalt          = "hangulsearch-default-salt"
)

// Environment names the deployment config recognizes.
const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

var knownEnvironments = []string{Development, Staging, Production}

// ABPolicy controls whether and how a request is bucketed into treatment.
type ABPolicy struct {
	Enabled        bool    `json:"enabled"`
	Salt           string  `json:"salt"`
	TreatmentRatio float64 `json:"treatmentRatio"`
}

// EnvConfig is one environment's weights and A/B policy.
type EnvConfig struct {
	ABPolicy         ABPolicy            `json:"abPolicy"`
	ControlWeights   similarity.Weights  `json:"controlWeights"`
	TreatmentWeights *similarity.Weights `json:"treatmentWeights"`
}

// Config is the full deployment configuration: per-environment weights
// and A/B policy, plus versioning metadata.
type Config struct {
	Environments map[string]EnvConfig `json:"environments"`
	ModelVersion string               `json:"modelVersion"`
	SchemaVersion int                 `json:"schemaVersion"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// DefaultEnvConfig returns a control-only, AB-disabled environment config
// using similarity.DefaultWeights.
func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		ControlWeights:   similarity.DefaultWeights(),
		TreatmentWeights: nil,
		ABPolicy:         ABPolicy{Enabled: false, TreatmentRatio: 0, Salt: defaultSalt},
	}
}

// DefaultConfig returns a config with all three known environments set to
// DefaultEnvConfig.
func DefaultConfig() Config {
	envs := make(map[string]EnvConfig, len(knownEnvironments))
	for _, name := range knownEnvironments {
		envs[name] = DefaultEnvConfig()
	}
	return Config{
		SchemaVersion: defaultSchemaVersion,
		ModelVersion:  defaultModelVersion,
		UpdatedAt:     time.Unix(0, 0).UTC(),
		Environments:  envs,
	}
}
