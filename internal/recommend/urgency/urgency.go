// Package urgency computes how time-critical a checklist item is, given
// the days remaining until departure, its typical processing time and any
// absolute institutional deadline.
//
// The model is a deterministic pure function of its inputs: a piecewise
// score over the ratio of remaining days to the item's real deadline
// horizon, plus a bonus for items other tasks block on.
package urgency

import (
	"fmt"
	"strings"

	"dayzero/internal/recommend/models"
)

// Model evaluates item urgency against configured lookup tables.
type Model struct {
	cfg Config
}

// New returns a Model using cfg's tables.
func New(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// NewDefault returns a Model with the default tables.
func NewDefault() *Model {
	return New(DefaultConfig())
}

// ProcessingDays returns the typical processing time for an item: the
// first matching title pattern, else the tag default, else the fallback.
func (m *Model) ProcessingDays(title string, tag models.ChecklistTag) int {
	lower := strings.ToLower(title)
	for _, pd := range m.cfg.ProcessingTimes {
		if strings.Contains(lower, pd.Pattern) {
			return pd.Days
		}
	}
	if days, ok := m.cfg.TagDefaults[tag]; ok {
		return days
	}
	return m.cfg.FallbackDays
}

// AbsoluteDeadline returns the institutional days-before-departure
// deadline for the item, and whether one applies. Matching ignores
// spaces so "visa interview" matches "visainterview" and vice versa.
func (m *Model) AbsoluteDeadline(title string) (int, bool) {
	squashed := strings.ReplaceAll(strings.ToLower(title), " ", "")
	for _, pd := range m.cfg.AbsoluteDeadlines {
		if strings.Contains(squashed, strings.ReplaceAll(pd.Pattern, " ", "")) {
			return pd.Days, true
		}
	}
	return 0, false
}

// blocksOtherItems reports whether other tasks depend on this item.
func (m *Model) blocksOtherItems(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range m.cfg.DependencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Evaluate scores an item's urgency for a departure daysUntilDeparture
// days away.
func (m *Model) Evaluate(title string, tag models.ChecklistTag, daysUntilDeparture int) models.UrgencyResult {
	processingDays := m.ProcessingDays(title, tag)

	// Real deadline horizon: the absolute deadline when one applies,
	// otherwise processing time plus a safety margin.
	horizon := processingDays + m.cfg.SafetyMarginDays
	if deadline, ok := m.AbsoluteDeadline(title); ok {
		horizon = deadline
	}

	var score float64
	var reasons []string
	days := float64(daysUntilDeparture)
	switch {
	case daysUntilDeparture <= 0:
		score = 1.0
		reasons = append(reasons, "departure imminent")
	case days <= float64(horizon)*0.5:
		score = 0.9
		reasons = append(reasons, fmt.Sprintf("severe time shortage (%d days needed)", processingDays))
	case days <= float64(horizon):
		score = 0.7
		reasons = append(reasons, fmt.Sprintf("deadline approaching (%d days needed)", processingDays))
	case days <= float64(horizon)*1.5:
		score = 0.5
		reasons = append(reasons, fmt.Sprintf("limited slack (%d days needed)", processingDays))
	default:
		score = 0.2
		reasons = append(reasons, "ample time")
	}

	if m.blocksOtherItems(title) {
		score += m.cfg.DependencyBonus
		reasons = append(reasons, "other items wait on this")
	}
	if score > 1.0 {
		score = 1.0
	}

	return models.UrgencyResult{
		Score:            score,
		Level:            levelOf(score),
		Reason:           strings.Join(reasons, " | "),
		ProcessingDays:   processingDays,
		DaysUntilTooLate: horizon,
	}
}

func levelOf(score float64) models.UrgencyLevel {
	switch {
	case score >= 0.8:
		return models.UrgencyCritical
	case score >= 0.6:
		return models.UrgencyHigh
	case score >= 0.4:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}
