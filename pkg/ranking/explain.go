package ranking

import (
	"context"

	"github.com/yeojin-dev/hangulsearch/internal/jamo"
	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

// ExplainedResult augments a Result with the raw signal values behind its
// breakdown, for callers that want to show why a match ranked where it did.
type ExplainedResult struct {
	Result
	QueryJamo           string
	TargetJamo          string
	EditDistance        int
	JaccardIntersection int
	JaccardUnion        int
}

// Explain runs Rank and recomputes full detail for each surviving result.
func Explain(query string, opts Options, source Source) []ExplainedResult {
	results, _ := explain(context.Background(), query, opts, source, false)
	return results
}

// ExplainContext is Explain with cooperative cancellation, mirroring
// RankContext.
func ExplainContext(ctx context.Context, query string, opts Options, source Source) ([]ExplainedResult, error) {
	return explain(ctx, query, opts, source, true)
}

func explain(ctx context.Context, query string, opts Options, source Source, cancellable bool) ([]ExplainedResult, error) {
	results, err := rank(ctx, query, opts, source, cancellable)
	detailed := make([]ExplainedResult, 0, len(results))
	for _, r := range results {
		target := source.NormalizedKey(r.Index)
		qJamo := string(jamo.Disassemble(r.Variant, false))
		tJamo := string(jamo.Disassemble(target, false))

		qGrams := similarity.KGrams(source.ProjectChoseong(r.Variant), 2)
		tGrams := similarity.KGrams(source.ChoseongKey(r.Index), 2)

		detailed = append(detailed, ExplainedResult{
			Result:              r,
			QueryJamo:           qJamo,
			TargetJamo:          tJamo,
			EditDistance:        similarity.Levenshtein([]rune(r.Variant), []rune(target)),
			JaccardIntersection: intersectionCount(qGrams, tGrams),
			JaccardUnion:        unionCount(qGrams, tGrams),
		})
	}
	return detailed, err
}

func intersectionCount(a, b map[string]struct{}) int {
	n := 0
	for g := range a {
		if _, ok := b[g]; ok {
			n++
		}
	}
	return n
}

func unionCount(a, b map[string]struct{}) int {
	return len(a) + len(b) - intersectionCount(a, b)
}
