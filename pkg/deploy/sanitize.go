package deploy

import (
	"time"

	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

// epoch is the UpdatedAt sentinel DefaultConfig stamps on an
// unpopulated config; Sanitize treats it (and anything earlier) as
// "never set".
var epoch = time.Unix(0, 0).UTC()

// Sanitize returns a copy of cfg with every environment clamped and
// defaulted to a safe, internally-consistent state:
//   - an empty Environments map is populated with DefaultEnvConfig for
//     each known environment name
//   - a missing known environment is filled in with DefaultEnvConfig
//   - TreatmentRatio is clamped to [0, 1], then zeroed when there is no
//     treatment weight vector to bucket into or AB policy is disabled
//   - ABPolicy.Enabled is forced false when TreatmentWeights is nil,
//     since there is nothing to bucket into
//   - an empty Salt is replaced with defaultSalt
//   - a SchemaVersion <= 0, zero-value ModelVersion, or epoch-or-earlier
//     UpdatedAt is defaulted
func Sanitize(cfg Config) Config {
	out := cfg
	if out.SchemaVersion <= 0 {
		out.SchemaVersion = defaultSchemaVersion
	}
	if out.ModelVersion == "" {
		out.ModelVersion = defaultModelVersion
	}
	if !out.UpdatedAt.After(epoch) {
		out.UpdatedAt = time.Now().UTC()
	}

	envs := make(map[string]EnvConfig, len(out.Environments)+len(knownEnvironments))
	for name, env := range out.Environments {
		envs[name] = sanitizeEnv(env)
	}
	for _, name := range knownEnvironments {
		if _, ok := envs[name]; !ok {
			envs[name] = DefaultEnvConfig()
		}
	}
	out.Environments = envs
	return out
}

func sanitizeEnv(env EnvConfig) EnvConfig {
	out := env
	out.ControlWeights = sanitizeWeights(env.ControlWeights)

	if out.TreatmentWeights != nil {
		w := sanitizeWeights(*out.TreatmentWeights)
		out.TreatmentWeights = &w
	}

	out.ABPolicy = sanitizeABPolicy(env.ABPolicy, out.TreatmentWeights != nil)
	return out
}

func sanitizeABPolicy(policy ABPolicy, hasTreatment bool) ABPolicy {
	out := policy
	if out.Salt == "" {
		out.Salt = defaultSalt
	}
	out.TreatmentRatio = clampUnit(out.TreatmentRatio)
	if !hasTreatment {
		out.Enabled = false
	}
	if !hasTreatment || !out.Enabled {
		out.TreatmentRatio = 0
	}
	return out
}

func sanitizeWeights(w similarity.Weights) similarity.Weights {
	if isZeroWeights(w) {
		return similarity.DefaultWeights()
	}
	return similarity.ClampWeights(w)
}

func isZeroWeights(w similarity.Weights) bool {
	return w == similarity.Weights{}
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
