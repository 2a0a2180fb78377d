package models

// MissingItemsRequest asks which popular items the traveler has not yet
// put on their checklist.
type MissingItemsRequest struct {
	ExistingItems []ChecklistItem `json:"existing_items"`
	CountryCode   string          `json:"country_code"`
	ProgramTypeID int             `json:"program_type_id"`
	// DepartureDate is "YYYY-MM-DD".
	DepartureDate string `json:"departure_date"`
}

// PriorityReorderRequest asks for a re-prioritized ordering of the
// traveler's current checklist.
type PriorityReorderRequest struct {
	CurrentItems  []ChecklistItem `json:"current_items"`
	CountryCode   string          `json:"country_code"`
	ProgramTypeID int             `json:"program_type_id"`
	DepartureDate string          `json:"departure_date"`
}
