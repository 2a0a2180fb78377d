// Package models defines the recommendation domain types and the wire
// shapes exchanged with the checklist frontend.
package models

// ChecklistItem is a single entry on a traveler's preparation checklist.
// Owned by the caller; the engine only reads it.
type ChecklistItem struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Tag         ChecklistTag    `json:"tag"`
	Status      ChecklistStatus `json:"status"`
	// IsFixed marks items whose date is externally imposed, e.g. a
	// scheduled visa interview slot.
	IsFixed bool `json:"is_fixed"`
}

// PopularityRecord is one catalog entry of aggregate traveler statistics
// for a (country, program) pair. Read-only for the duration of a request.
//
// Invariants (clamped defensively on use, upstream quality not guaranteed):
//   - PopularityRate in [0,1]
//   - PriorityScore in [1,10], lower is more important
type PopularityRecord struct {
	ItemTitle       string       `json:"item_title"`
	ItemDescription string       `json:"item_description"`
	ItemTag         ChecklistTag `json:"item_tag"`
	PopularityRate  float64      `json:"popularity_rate"`
	// AvgOffsetDays is when travelers typically complete the item,
	// in days relative to departure (negative = before departure).
	AvgOffsetDays int `json:"avg_offset_days"`
	PriorityScore int `json:"priority_score"`
}

// UrgencyResult describes how time-critical a single item is.
type UrgencyResult struct {
	Score  float64      `json:"urgency_score"`
	Level  UrgencyLevel `json:"urgency_level"`
	Reason string       `json:"urgency_reason"`
	// ProcessingDays is the estimated number of days the item takes once
	// started.
	ProcessingDays int `json:"processing_time_days"`
	// DaysUntilTooLate is the real deadline horizon used: the absolute
	// deadline when one applies, otherwise processing time plus margin.
	DaysUntilTooLate int `json:"days_until_too_late"`
}

// RecommendationCandidate is a catalog record the traveler is missing,
// enriched with urgency and a composite confidence score.
type RecommendationCandidate struct {
	ItemTitle        string       `json:"item_title"`
	ItemDescription  string       `json:"item_description"`
	ItemTag          ChecklistTag `json:"item_tag"`
	PopularityRate   float64      `json:"popularity_rate"`
	AvgOffsetDays    int          `json:"avg_offset_days"`
	PriorityScore    int          `json:"priority_score"`
	UrgencyLevel     UrgencyLevel `json:"urgency_level"`
	UrgencyReason    string       `json:"urgency_reason"`
	ConfidenceScore  float64      `json:"confidence_score"`
	ProcessingDays   int          `json:"processing_time_days"`
	DaysUntilTooLate int          `json:"days_until_too_late"`
}

// ReorderedItem is a checklist item with its re-computed priority.
type ReorderedItem struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tag         ChecklistTag `json:"tag"`
	// OriginalPriority is the item's 1-based position in the request.
	OriginalPriority int `json:"original_priority"`
	// AIPriority is the item's 1-based position after reordering.
	AIPriority int `json:"ai_priority"`
	// AIPriorityScore may exceed 1.0; it is a ranking key, not a
	// probability.
	AIPriorityScore float64      `json:"ai_priority_score"`
	UrgencyScore    float64      `json:"urgency_score"`
	UrgencyLevel    UrgencyLevel `json:"urgency_level"`
	ReorderReason   string       `json:"reorder_reason"`
	IsFixed         bool         `json:"is_fixed"`
	ProcessingDays  int          `json:"processing_time_days"`
	// RecommendedStartDate is "YYYY-MM-DD", or StartImmediately when the
	// item should have been started already.
	RecommendedStartDate string `json:"recommended_start_date"`
}

// StartImmediately is the RecommendedStartDate sentinel for items whose
// latest safe start is in the past.
const StartImmediately = "Start immediately"
