package models

// MissingItemsResponse carries the top missing-item recommendations plus
// an objective coverage summary of the traveler's current list.
type MissingItemsResponse struct {
	MissingItems          []RecommendationCandidate `json:"missing_items"`
	TotalMissing          int                       `json:"total_missing"`
	RecommendationSummary string                    `json:"recommendation_summary"`
	AnalysisSummary       string                    `json:"analysis_summary"`
}

// PriorityReorderResponse carries the fully reordered checklist.
type PriorityReorderResponse struct {
	ReorderedItems     []ReorderedItem `json:"reordered_items"`
	TotalReordered     int             `json:"total_reordered"`
	DaysUntilDeparture int             `json:"days_until_departure"`
	ReorderSummary     string          `json:"reorder_summary"`
	// CriticalDeadlineWarning lists every CRITICAL item with its urgency
	// reason; nil when nothing is critical.
	CriticalDeadlineWarning *string `json:"critical_deadline_warning,omitempty"`
}

// CacheStatusResponse reports the live response-cache population.
type CacheStatusResponse struct {
	TotalCachedItems int `json:"total_cached_items"`
}

// CacheClearResponse reports how many entries a purge removed.
type CacheClearResponse struct {
	Cleared int `json:"cleared"`
}
