package deploy

import "github.com/yeojin-dev/hangulsearch/pkg/similarity"

// Bucket identifies which weight vector a resolved request was assigned.
type Bucket int

const (
	ControlBucket Bucket = iota
	TreatmentBucket
)

func (b Bucket) String() string {
	if b == TreatmentBucket {
		return "treatment"
	}
	return "control"
}

// Resolution is the outcome of resolving weights for one request.
type Resolution struct {
	Weights similarity.Weights
	Bucket  Bucket
}

// ResolveOptions narrows Resolve's inputs: the environment name, the
// caller's userId (used for hash-based bucketing), and an optional forced
// bucket that bypasses hashing entirely.
type ResolveOptions struct {
	Environment string
	UserID      string
	Forced      *Bucket
}

// Resolve picks the similarity weights to use for one request, following
// this precedence:
//  1. env missing from cfg -> ErrMissingEnvironment
//  2. Forced bucket set -> honor it, downgrading Forced=Treatment to
//     control if the environment has no treatment weights
//  3. AB policy disabled, or no treatment weights configured -> control
//  4. TreatmentRatio <= 0 -> control; TreatmentRatio >= 1 -> treatment
//  5. empty userId -> control (hashing needs a stable identity)
//  6. otherwise, BucketFor(salt, userId) < treatmentRatio selects
//     treatment, else control
//
// cfg should already be sanitized; Resolve does not sanitize it.
func Resolve(cfg Config, opts ResolveOptions) (Resolution, error) {
	env, ok := cfg.Environments[opts.Environment]
	if !ok {
		return Resolution{}, ErrMissingEnvironment
	}

	hasTreatment := env.TreatmentWeights != nil

	if opts.Forced != nil {
		bucket := *opts.Forced
		if bucket == TreatmentBucket && !hasTreatment {
			bucket = ControlBucket
		}
		return resolution(env, bucket), nil
	}

	if !env.ABPolicy.Enabled || !hasTreatment {
		return resolution(env, ControlBucket), nil
	}

	ratio := env.ABPolicy.TreatmentRatio
	if ratio <= 0 {
		return resolution(env, ControlBucket), nil
	}
	if ratio >= 1 {
		return resolution(env, TreatmentBucket), nil
	}

	if opts.UserID == "" {
		return resolution(env, ControlBucket), nil
	}

	if BucketFor(env.ABPolicy.Salt, opts.UserID) < ratio {
		return resolution(env, TreatmentBucket), nil
	}
	return resolution(env, ControlBucket), nil
}

// ResolveOrDefault is Resolve but never errors: it sanitizes cfg, tries
// opts.Environment, falls back to Production if that environment is
// missing, and only falls back to DefaultEnvConfig's control weights if
// Production is missing too.
func ResolveOrDefault(cfg Config, opts ResolveOptions) Resolution {
	sanitized := Sanitize(cfg)

	if res, err := Resolve(sanitized, opts); err == nil {
		return res
	}

	prodOpts := opts
	prodOpts.Environment = Production
	if res, err := Resolve(sanitized, prodOpts); err == nil {
		return res
	}

	return resolution(DefaultEnvConfig(), ControlBucket)
}

func resolution(env EnvConfig, bucket Bucket) Resolution {
	if bucket == TreatmentBucket && env.TreatmentWeights != nil {
		return Resolution{Weights: *env.TreatmentWeights, Bucket: TreatmentBucket}
	}
	return Resolution{Weights: env.ControlWeights, Bucket: ControlBucket}
}
