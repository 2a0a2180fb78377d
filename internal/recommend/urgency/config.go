package urgency

import "dayzero/internal/recommend/models"

// PatternDays binds a title pattern to a number of days. Patterns are
// evaluated in slice order; the first match wins.
type PatternDays struct {
	Pattern string
	Days    int
}

// Config holds the urgency model's lookup tables and tuning constants.
// These are heuristic configuration data, not logic: they encode observed
// processing times and institutional deadlines and can be externalized
// without touching the scoring algorithm.
type Config struct {
	// ProcessingTimes maps title substrings to typical processing days.
	ProcessingTimes []PatternDays
	// AbsoluteDeadlines maps title substrings (matched ignoring spaces)
	// to the non-negotiable days-before-departure by which the item must
	// be started. Overrides the processing-time-derived horizon.
	AbsoluteDeadlines []PatternDays
	// TagDefaults supplies processing days when no pattern matches.
	TagDefaults map[models.ChecklistTag]int
	// FallbackDays applies when neither pattern nor tag matches.
	FallbackDays int
	// SafetyMarginDays pads the processing time when no absolute
	// deadline applies.
	SafetyMarginDays int
	// DependencyKeywords mark items other tasks block on.
	DependencyKeywords []string
	// DependencyBonus is added to the score of blocking items.
	DependencyBonus float64
}

// DefaultConfig returns the observed processing-time and deadline tables
// for exchange-program preparation items.
func DefaultConfig() Config {
	return Config{
		ProcessingTimes: []PatternDays{
			{"비자", 21}, {"visa", 21}, {"f-1", 21}, {"학생비자", 21},
			{"여권", 10}, {"passport", 10},
			{"학교서류", 7}, {"university", 7}, {"입학허가서", 7},
			{"장학금", 14}, {"scholarship", 14},
			{"기숙사", 5}, {"dormitory", 5}, {"숙소", 5},
			{"예방접종", 14}, {"vaccination", 14},
			{"보험", 1}, {"insurance", 1},
			{"환전", 1}, {"exchange", 1}, {"달러", 1}, {"엔화", 1}, {"유로", 1},
			{"항공권", 1}, {"flight", 1},
			{"짐", 1}, {"packing", 1},
		},
		AbsoluteDeadlines: []PatternDays{
			{"비자인터뷰", 30}, {"visa interview", 30},
			{"예방접종", 14}, {"vaccination", 14},
			{"장학금", 60}, {"scholarship", 60},
			{"기숙사", 45}, {"dormitory", 45},
			{"sevis", 30},
			{"i-20", 45},
		},
		TagDefaults: map[models.ChecklistTag]int{
			models.TagDocument:  7,
			models.TagInsurance: 1,
			models.TagExchange:  1,
			models.TagSaving:    1,
			models.TagEtc:       3,
		},
		FallbackDays:     3,
		SafetyMarginDays: 3,
		DependencyKeywords: []string{
			"비자", "여권", "입학허가서", "visa", "passport", "admission",
		},
		DependencyBonus: 0.1,
	}
}
