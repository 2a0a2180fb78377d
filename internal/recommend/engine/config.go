package engine

import "dayzero/internal/recommend/similarity"

// Weights holds the scoring constants of the ranking engine. They are
// tunable configuration, kept out of the algorithm so recalibration does
// not touch ranking code.
type Weights struct {
	// Confidence score components for missing-item candidates.
	Urgency    float64
	Popularity float64
	Priority   float64

	// Reorder score components.
	PopularityBonus        float64
	DefaultPopularityBonus float64
	FixedBonus             float64

	// Duplicate filtering.
	DuplicateThreshold float64
	MinSharedTokens    int

	// TopN caps the missing-item recommendation list.
	TopN int

	// StartMarginDays pads processing time when deriving the
	// recommended start date.
	StartMarginDays int
}

// DefaultWeights returns the reference scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Urgency:                0.5,
		Popularity:             0.3,
		Priority:               0.2,
		PopularityBonus:        0.2,
		DefaultPopularityBonus: 0.1,
		FixedBonus:             0.3,
		DuplicateThreshold:     similarity.DefaultThreshold,
		MinSharedTokens:        2,
		TopN:                   5,
		StartMarginDays:        3,
	}
}
