package account

import "marketplace/internal/pkg/errs"

// RatingAggregate is a running mean over received rating scores.
// Average is meaningful only when Count > 0.
type RatingAggregate struct {
	Average float64
	Count   int
}

// Apply folds one more score into the running mean.
func (r RatingAggregate) Apply(score int) (RatingAggregate, error) {
	if score < 1 || score > 5 {
		return RatingAggregate{}, errs.NewValueIsOutOfRangeError("score", score, 1, 5)
	}

	return RatingAggregate{
		Average: (r.Average*float64(r.Count) + float64(score)) / float64(r.Count+1),
		Count:   r.Count + 1,
	}, nil
}
