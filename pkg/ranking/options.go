// Package ranking runs the multi-variant fuzzy ranking pipeline: query
// variant generation, candidate prefiltering, parallel scoring against a
// monotonically rising score gate, and top-K aggregation.
package ranking

import "github.com/yeojin-dev/hangulsearch/pkg/similarity"

// Options configures one searchSimilar/explainSimilar invocation.
type Options struct {
	Limit                    int
	Weights                  similarity.Weights
	IncludeLayoutVariants    bool
	CandidateLimitPerVariant int
	MinimumScore             float64
}

// WithDefaults fills zero-valued fields with the pipeline's defaults:
// limit 10, balanced weights, a per-variant candidate cap of limit*10, and
// no minimum score floor. IncludeLayoutVariants is left as given, so a
// zero Options does not generate layout variants.
func (o Options) WithDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = 10
	}
	if o.Weights == (similarity.Weights{}) {
		o.Weights = similarity.DefaultWeights()
	}
	if o.CandidateLimitPerVariant <= 0 {
		o.CandidateLimitPerVariant = o.Limit * 10
	}
	return o
}

// Source is the minimal view of a search index the ranking pipeline needs:
// item count, per-index key projections, and a candidate lookup for one
// query variant. pkg/search's Index implements this.
type Source interface {
	Size() int
	RawKey(i int) string
	NormalizedKey(i int) string
	ChoseongKey(i int) string
	// CandidateIndices returns the base candidate index set for one query
	// variant (already choseong-projected and raw-normalized), in
	// whatever order the index's strategy produces them.
	CandidateIndices(choseongVariant, rawVariant string) []int
	// ProjectChoseong applies the index's own ChoseongOptions to s, so
	// query variants are projected the same way item keys were.
	ProjectChoseong(s string) string
}

// Result is one ranked item.
type Result struct {
	Index      int
	Breakdown  similarity.Breakdown
	Variant    string
	DetailText string
}
