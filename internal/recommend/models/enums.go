package models

// ChecklistStatus tracks the completion state of a checklist item.
type ChecklistStatus string

const (
	StatusTodo  ChecklistStatus = "TODO"
	StatusDoing ChecklistStatus = "DOING"
	StatusDone  ChecklistStatus = "DONE"
	StatusSkip  ChecklistStatus = "SKIP"
)

// ChecklistTag categorizes a checklist item.
type ChecklistTag string

const (
	TagNone      ChecklistTag = "NONE"
	TagSaving    ChecklistTag = "SAVING"
	TagExchange  ChecklistTag = "EXCHANGE"
	TagInsurance ChecklistTag = "INSURANCE"
	TagDocument  ChecklistTag = "DOCUMENT"
	TagEtc       ChecklistTag = "ETC"
)

// Valid reports whether the tag is one of the known values.
func (t ChecklistTag) Valid() bool {
	switch t {
	case TagNone, TagSaving, TagExchange, TagInsurance, TagDocument, TagEtc:
		return true
	}
	return false
}

// UrgencyLevel buckets an urgency score for display.
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "CRITICAL"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyMedium   UrgencyLevel = "MEDIUM"
	UrgencyLow      UrgencyLevel = "LOW"
)
