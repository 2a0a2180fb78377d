// Package engine ranks checklist items: it recommends popular items the
// traveler is missing and re-prioritizes the current list by objective
// urgency. All computation is pure and synchronous; the engine holds no
// mutable state and is safe for concurrent use.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dayzero/internal/recommend/keyword"
	"dayzero/internal/recommend/models"
	"dayzero/internal/recommend/similarity"
	"dayzero/internal/recommend/urgency"
)

// Engine combines similarity filtering, urgency modeling and catalog
// popularity into ranked recommendation views.
type Engine struct {
	urgency *urgency.Model
	weights Weights
}

// New builds an Engine from an urgency model and scoring weights.
func New(model *urgency.Model, weights Weights) *Engine {
	return &Engine{urgency: model, weights: weights}
}

// NewDefault builds an Engine with default tables and weights.
func NewDefault() *Engine {
	return New(urgency.NewDefault(), DefaultWeights())
}

// DaysUntil returns the whole days from now to departure, negative once
// departure has passed.
func DaysUntil(now, departure time.Time) int {
	return int(departure.Sub(now).Hours() / 24)
}

// FindMissingItems returns the top catalog candidates absent from the
// traveler's checklist, ranked by composite confidence, plus an objective
// coverage summary of the existing list. Candidates duplicating an
// existing item are excluded; ties keep catalog order.
func (e *Engine) FindMissingItems(
	existing []models.ChecklistItem,
	catalog []models.PopularityRecord,
	now, departure time.Time,
) ([]models.RecommendationCandidate, string) {
	daysUntil := DaysUntil(now, departure)

	existingTitles := make(map[string]struct{}, len(existing))
	existingKeywords := make([]map[string]struct{}, len(existing))
	for i, item := range existing {
		existingTitles[strings.ToLower(strings.TrimSpace(item.Title))] = struct{}{}
		existingKeywords[i] = keyword.Extract(item.Title + " " + item.Description)
	}

	candidates := make([]models.RecommendationCandidate, 0, len(catalog))
	for _, rec := range catalog {
		if _, ok := existingTitles[strings.ToLower(strings.TrimSpace(rec.ItemTitle))]; ok {
			continue
		}
		if e.duplicatesExisting(rec, existing, existingKeywords) {
			continue
		}

		u := e.urgency.Evaluate(rec.ItemTitle, rec.ItemTag, daysUntil)
		popularity := clamp01(rec.PopularityRate)
		priority := clampPriority(rec.PriorityScore)

		confidence := u.Score*e.weights.Urgency +
			popularity*e.weights.Popularity +
			(1-float64(priority)/10)*e.weights.Priority

		candidates = append(candidates, models.RecommendationCandidate{
			ItemTitle:        rec.ItemTitle,
			ItemDescription:  rec.ItemDescription,
			ItemTag:          rec.ItemTag,
			PopularityRate:   popularity,
			AvgOffsetDays:    rec.AvgOffsetDays,
			PriorityScore:    priority,
			UrgencyLevel:     u.Level,
			UrgencyReason:    u.Reason,
			ConfidenceScore:  confidence,
			ProcessingDays:   u.ProcessingDays,
			DaysUntilTooLate: u.DaysUntilTooLate,
		})
	}

	// Stable sort keeps catalog order on ties for reproducible output.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
	})
	if len(candidates) > e.weights.TopN {
		candidates = candidates[:e.weights.TopN]
	}

	return candidates, e.analyzePreparation(existing, daysUntil)
}

// duplicatesExisting applies the loose shared-token pre-filter and the
// conservative Jaccard check against every existing item.
func (e *Engine) duplicatesExisting(
	rec models.PopularityRecord,
	existing []models.ChecklistItem,
	existingKeywords []map[string]struct{},
) bool {
	recKeywords := keyword.Extract(rec.ItemTitle + " " + rec.ItemDescription)
	for i, item := range existing {
		if len(recKeywords) > 0 && len(existingKeywords[i]) > 0 &&
			similarity.SharedTokens(recKeywords, existingKeywords[i]) >= e.weights.MinSharedTokens {
			return true
		}
		if similarity.IsDuplicate(
			item.Title, item.Description,
			rec.ItemTitle, rec.ItemDescription,
			e.weights.DuplicateThreshold,
		) {
			return true
		}
	}
	return false
}

// ReorderPriority re-ranks the traveler's current items by objective
// priority: urgency plus popularity and fixed-schedule bonuses. The
// output is a permutation of the input. The second return value lists
// every CRITICAL item with its reason, nil when none are critical.
func (e *Engine) ReorderPriority(
	current []models.ChecklistItem,
	catalog []models.PopularityRecord,
	now, departure time.Time,
) ([]models.ReorderedItem, *string) {
	daysUntil := DaysUntil(now, departure)

	byTitle := make(map[string]models.PopularityRecord, len(catalog))
	for _, rec := range catalog {
		byTitle[rec.ItemTitle] = rec
	}

	reordered := make([]models.ReorderedItem, 0, len(current))
	var criticalWarnings []string

	for i, item := range current {
		u := e.urgency.Evaluate(item.Title, item.Tag, daysUntil)

		popularityBonus := e.weights.DefaultPopularityBonus
		if rec, ok := byTitle[item.Title]; ok {
			popularityBonus = clamp01(rec.PopularityRate) * e.weights.PopularityBonus
		}
		fixedBonus := 0.0
		reason := u.Reason
		if item.IsFixed {
			fixedBonus = e.weights.FixedBonus
			reason += " | fixed schedule"
		}

		if u.Level == models.UrgencyCritical {
			criticalWarnings = append(criticalWarnings,
				fmt.Sprintf("'%s' - %s", item.Title, u.Reason))
		}

		reordered = append(reordered, models.ReorderedItem{
			Title:                item.Title,
			Description:          item.Description,
			Tag:                  item.Tag,
			OriginalPriority:     i + 1,
			AIPriorityScore:      u.Score + popularityBonus + fixedBonus,
			UrgencyScore:         u.Score,
			UrgencyLevel:         u.Level,
			ReorderReason:        reason,
			IsFixed:              item.IsFixed,
			ProcessingDays:       u.ProcessingDays,
			RecommendedStartDate: e.recommendedStartDate(now, daysUntil, u.ProcessingDays),
		})
	}

	sort.SliceStable(reordered, func(i, j int) bool {
		return reordered[i].AIPriorityScore > reordered[j].AIPriorityScore
	})
	for i := range reordered {
		reordered[i].AIPriority = i + 1
	}

	var warning *string
	if len(criticalWarnings) > 0 {
		joined := strings.Join(criticalWarnings, "; ")
		warning = &joined
	}
	return reordered, warning
}

// recommendedStartDate is the latest comfortable start: departure minus
// processing time and margin. Already past means start immediately.
func (e *Engine) recommendedStartDate(now time.Time, daysUntil, processingDays int) string {
	startDaysBefore := processingDays + e.weights.StartMarginDays
	if daysUntil > startDaysBefore {
		return now.AddDate(0, 0, daysUntil-startDaysBefore).Format("2006-01-02")
	}
	return models.StartImmediately
}

// analyzePreparation buckets the completion ratio of the existing list
// into a qualitative coverage statement.
func (e *Engine) analyzePreparation(existing []models.ChecklistItem, daysUntil int) string {
	if len(existing) == 0 {
		return fmt.Sprintf("%d days to departure - time to start preparing", daysUntil)
	}

	completed := 0
	for _, item := range existing {
		if item.Status == models.StatusDone {
			completed++
		}
	}
	rate := float64(completed) / float64(len(existing))
	pct := int(rate * 100)

	switch {
	case rate >= 0.8:
		return fmt.Sprintf("progress %d%% - very well prepared", pct)
	case rate >= 0.6:
		return fmt.Sprintf("progress %d%% - on track", pct)
	case rate >= 0.4:
		return fmt.Sprintf("progress %d%% - needs more focus", pct)
	case daysUntil <= 14:
		return fmt.Sprintf("progress %d%% - departure is close, hurry up", pct)
	default:
		return fmt.Sprintf("progress %d%% - plan your preparation", pct)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampPriority(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
