package query

import "github.com/neoscan/runtime/pkg/neo"

// Matches reports whether the approach satisfies every predicate in the
// collection. An empty collection matches everything. Evaluation stops at
// the first predicate that fails to match or returns an error; the error
// is propagated unchanged.
func Matches(approach *neo.CloseApproach, predicates []Predicate) (bool, error) {
	for _, p := range predicates {
		ok, err := p.Evaluate(approach)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Limit caps a result stream at n approaches. When n is zero or negative
// the input stream is returned as-is, untouched and unmaterialized, so an
// unbounded source stays unbounded. Otherwise the returned stream yields at
// most the first n approaches and never pulls the source past the n-th
// item. An error from the source still terminates the stream immediately,
// whether or not the cap was reached.
func Limit(results neo.ApproachSeq, n int) neo.ApproachSeq {
	if n <= 0 {
		return results
	}
	return func(yield func(*neo.CloseApproach, error) bool) {
		remaining := n
		for approach, err := range results {
			if !yield(approach, err) {
				return
			}
			if err != nil {
				return
			}
			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}
