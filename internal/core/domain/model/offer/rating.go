package offer

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

const (
	// RatingMinScore is the lowest allowed rating score.
	RatingMinScore = 1
	// RatingMaxScore is the highest allowed rating score.
	RatingMaxScore = 5
)

// Rating is a 1-5 score with an optional comment, attached to an offer once it
// is completed: the business rates the rider when confirming completion, and
// the rider may rate the business afterwards. Ratings are the only fields that
// remain mutable on a terminal offer.
type Rating struct {
	score   int
	comment string
}

// NewRating creates a Rating. The score must be within [RatingMinScore, RatingMaxScore].
func NewRating(score int, comment string) (Rating, error) {
	if score < RatingMinScore || score > RatingMaxScore {
		return Rating{}, errs.NewValueIsOutOfRangeError("score", score, RatingMinScore, RatingMaxScore)
	}
	return Rating{score: score, comment: comment}, nil
}

// Score returns the rating score.
func (r Rating) Score() int {
	return r.score
}

// Comment returns the optional rating comment.
func (r Rating) Comment() string {
	return r.comment
}

// String returns a short human-readable form, e.g. "4/5".
func (r Rating) String() string {
	return fmt.Sprintf("%d/%d", r.score, RatingMaxScore)
}
