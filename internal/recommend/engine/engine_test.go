package engine

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayzero/internal/recommend/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func departureIn(days int) time.Time {
	return testNow.AddDate(0, 0, days)
}

func testCatalog() []models.PopularityRecord {
	return []models.PopularityRecord{
		{ItemTitle: "Passport check", ItemDescription: "verify passport validity", ItemTag: models.TagDocument, PopularityRate: 0.98, AvgOffsetDays: -120, PriorityScore: 1},
		{ItemTitle: "Visa", ItemDescription: "student visa", ItemTag: models.TagDocument, PopularityRate: 0.95, AvgOffsetDays: -90, PriorityScore: 1},
		{ItemTitle: "Travel insurance", ItemDescription: "coverage abroad", ItemTag: models.TagInsurance, PopularityRate: 0.80, AvgOffsetDays: -14, PriorityScore: 3},
		{ItemTitle: "Currency exchange", ItemDescription: "exchange money", ItemTag: models.TagExchange, PopularityRate: 0.75, AvgOffsetDays: -7, PriorityScore: 5},
		{ItemTitle: "Packing", ItemDescription: "pack luggage", ItemTag: models.TagEtc, PopularityRate: 0.99, AvgOffsetDays: -2, PriorityScore: 8},
		{ItemTitle: "Dormitory application", ItemDescription: "housing", ItemTag: models.TagDocument, PopularityRate: 0.70, AvgOffsetDays: -60, PriorityScore: 2},
	}
}

func TestFindMissingItems(t *testing.T) {
	e := NewDefault()

	t.Run("excludes semantic duplicates and ranks visa low far out", func(t *testing.T) {
		existing := []models.ChecklistItem{
			{Title: "Passport", Tag: models.TagDocument, Status: models.StatusTodo},
		}
		catalog := []models.PopularityRecord{
			{ItemTitle: "Passport check", ItemDescription: "...", ItemTag: models.TagDocument, PopularityRate: 0.98, AvgOffsetDays: -120, PriorityScore: 1},
			{ItemTitle: "Visa", ItemDescription: "...", ItemTag: models.TagDocument, PopularityRate: 0.95, AvgOffsetDays: -90, PriorityScore: 1},
		}

		candidates, _ := e.FindMissingItems(existing, catalog, testNow, departureIn(100))

		require.Len(t, candidates, 1)
		assert.Equal(t, "Visa", candidates[0].ItemTitle)
		// 100 days vs horizon 24 is ample time (0.2) plus the blocking
		// bonus (0.1): LOW, nowhere near CRITICAL.
		assert.Equal(t, models.UrgencyLow, candidates[0].UrgencyLevel)
		assert.InDelta(t, 0.3*0.5+0.95*0.3+0.9*0.2, candidates[0].ConfidenceScore, 1e-9)
	})

	t.Run("visa turns critical close to departure", func(t *testing.T) {
		existing := []models.ChecklistItem{
			{Title: "Passport", Tag: models.TagDocument},
		}
		catalog := []models.PopularityRecord{
			{ItemTitle: "Visa", ItemDescription: "...", ItemTag: models.TagDocument, PopularityRate: 0.95, AvgOffsetDays: -90, PriorityScore: 1},
		}

		candidates, _ := e.FindMissingItems(existing, catalog, testNow, departureIn(5))

		require.Len(t, candidates, 1)
		// 5 <= 24*0.5 banding gives 0.9; the blocking bonus caps at 1.0.
		assert.Equal(t, models.UrgencyCritical, candidates[0].UrgencyLevel)
	})

	t.Run("never returns an exact case-insensitive title match", func(t *testing.T) {
		existing := []models.ChecklistItem{
			{Title: "VISA", Tag: models.TagDocument},
			{Title: "packing ", Tag: models.TagEtc},
		}
		candidates, _ := e.FindMissingItems(existing, testCatalog(), testNow, departureIn(30))
		for _, c := range candidates {
			for _, item := range existing {
				assert.NotEqual(t,
					strings.ToLower(strings.TrimSpace(item.Title)),
					strings.ToLower(strings.TrimSpace(c.ItemTitle)))
			}
		}
	})

	t.Run("output is capped and non-increasing by confidence", func(t *testing.T) {
		candidates, _ := e.FindMissingItems(nil, testCatalog(), testNow, departureIn(30))
		assert.LessOrEqual(t, len(candidates), 5)
		for i := 1; i < len(candidates); i++ {
			assert.GreaterOrEqual(t, candidates[i-1].ConfidenceScore, candidates[i].ConfidenceScore)
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		catalog := []models.PopularityRecord{
			{ItemTitle: "errand one", ItemTag: models.TagEtc, PopularityRate: 0.5, PriorityScore: 5},
			{ItemTitle: "errand two", ItemTag: models.TagEtc, PopularityRate: 0.5, PriorityScore: 5},
		}
		candidates, _ := e.FindMissingItems(nil, catalog, testNow, departureIn(60))
		require.Len(t, candidates, 2)
		assert.Equal(t, "errand one", candidates[0].ItemTitle)
		assert.Equal(t, "errand two", candidates[1].ItemTitle)
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		existing := []models.ChecklistItem{{Title: "Visa", Tag: models.TagDocument}}
		first, firstSummary := e.FindMissingItems(existing, testCatalog(), testNow, departureIn(45))
		second, secondSummary := e.FindMissingItems(existing, testCatalog(), testNow, departureIn(45))
		assert.Equal(t, first, second)
		assert.Equal(t, firstSummary, secondSummary)
	})

	t.Run("clamps out-of-range catalog values", func(t *testing.T) {
		catalog := []models.PopularityRecord{
			{ItemTitle: "odd record", ItemTag: models.TagEtc, PopularityRate: 1.7, PriorityScore: 0},
		}
		candidates, _ := e.FindMissingItems(nil, catalog, testNow, departureIn(60))
		require.Len(t, candidates, 1)
		assert.Equal(t, 1.0, candidates[0].PopularityRate)
		assert.Equal(t, 1, candidates[0].PriorityScore)
	})
}

func TestAnalyzePreparation(t *testing.T) {
	e := NewDefault()

	items := func(done, total int) []models.ChecklistItem {
		out := make([]models.ChecklistItem, total)
		for i := range out {
			out[i].Title = "item"
			out[i].Status = models.StatusTodo
			if i < done {
				out[i].Status = models.StatusDone
			}
		}
		return out
	}

	t.Run("empty list prompts a start", func(t *testing.T) {
		_, summary := e.FindMissingItems(nil, testCatalog(), testNow, departureIn(90))
		assert.Contains(t, summary, "time to start preparing")
	})

	t.Run("coverage bands", func(t *testing.T) {
		_, high := e.FindMissingItems(items(9, 10), testCatalog(), testNow, departureIn(90))
		assert.Contains(t, high, "very well prepared")

		_, mid := e.FindMissingItems(items(6, 10), testCatalog(), testNow, departureIn(90))
		assert.Contains(t, mid, "on track")

		_, low := e.FindMissingItems(items(1, 10), testCatalog(), testNow, departureIn(10))
		assert.Contains(t, low, "departure is close")
	})
}

func TestReorderPriority(t *testing.T) {
	e := NewDefault()

	t.Run("output is a permutation sorted by non-increasing score", func(t *testing.T) {
		current := []models.ChecklistItem{
			{Title: "Packing", Tag: models.TagEtc},
			{Title: "Visa", Tag: models.TagDocument},
			{Title: "Travel insurance", Tag: models.TagInsurance},
			{Title: "Dormitory application", Tag: models.TagDocument},
		}
		reordered, _ := e.ReorderPriority(current, testCatalog(), testNow, departureIn(40))

		require.Len(t, reordered, len(current))
		var want, got []string
		for _, item := range current {
			want = append(want, item.Title)
		}
		for _, item := range reordered {
			got = append(got, item.Title)
		}
		sort.Strings(want)
		sort.Strings(got)
		assert.Equal(t, want, got, "reorder must be a permutation of the input")

		for i := 1; i < len(reordered); i++ {
			assert.GreaterOrEqual(t, reordered[i-1].AIPriorityScore, reordered[i].AIPriorityScore)
		}
		for i, item := range reordered {
			assert.Equal(t, i+1, item.AIPriority)
		}
	})

	t.Run("original priority is the 1-based input position", func(t *testing.T) {
		current := []models.ChecklistItem{
			{Title: "Visa", Tag: models.TagDocument},
			{Title: "Packing", Tag: models.TagEtc},
		}
		reordered, _ := e.ReorderPriority(current, nil, testNow, departureIn(40))
		byTitle := map[string]models.ReorderedItem{}
		for _, item := range reordered {
			byTitle[item.Title] = item
		}
		assert.Equal(t, 1, byTitle["Visa"].OriginalPriority)
		assert.Equal(t, 2, byTitle["Packing"].OriginalPriority)
	})

	t.Run("fixed item ranks at or above its unfixed twin", func(t *testing.T) {
		current := []models.ChecklistItem{
			{Title: "City registration", Tag: models.TagEtc, IsFixed: false},
			{Title: "City registration", Tag: models.TagEtc, IsFixed: true},
		}
		reordered, _ := e.ReorderPriority(current, nil, testNow, departureIn(40))
		require.Len(t, reordered, 2)
		assert.True(t, reordered[0].IsFixed)
		assert.Contains(t, reordered[0].ReorderReason, "fixed schedule")
		assert.Greater(t, reordered[0].AIPriorityScore, reordered[1].AIPriorityScore)
	})

	t.Run("matched catalog record contributes its popularity bonus", func(t *testing.T) {
		current := []models.ChecklistItem{{Title: "Packing", Tag: models.TagEtc}}
		reordered, _ := e.ReorderPriority(current, testCatalog(), testNow, departureIn(40))
		require.Len(t, reordered, 1)
		// Packing: horizon 1+3=4, 40 days is ample time (0.2); bonus is
		// 0.99*0.2 instead of the unmatched default 0.1.
		assert.InDelta(t, 0.2+0.99*0.2, reordered[0].AIPriorityScore, 1e-9)
	})

	t.Run("critical warning lists every critical item", func(t *testing.T) {
		current := []models.ChecklistItem{
			{Title: "Visa", Tag: models.TagDocument},
			{Title: "Packing", Tag: models.TagEtc},
		}
		reordered, warning := e.ReorderPriority(current, nil, testNow, departureIn(3))
		require.NotNil(t, warning)
		assert.Contains(t, *warning, "'Visa'")
		require.Len(t, reordered, 2)
	})

	t.Run("no critical items means nil warning", func(t *testing.T) {
		current := []models.ChecklistItem{{Title: "Packing", Tag: models.TagEtc}}
		_, warning := e.ReorderPriority(current, nil, testNow, departureIn(60))
		assert.Nil(t, warning)
	})

	t.Run("recommended start date", func(t *testing.T) {
		current := []models.ChecklistItem{
			{Title: "Visa", Tag: models.TagDocument},
			{Title: "Packing", Tag: models.TagEtc},
		}
		reordered, _ := e.ReorderPriority(current, nil, testNow, departureIn(40))
		byTitle := map[string]models.ReorderedItem{}
		for _, item := range reordered {
			byTitle[item.Title] = item
		}
		// Visa needs 21+3 days, so start 40-24=16 days from now.
		assert.Equal(t, testNow.AddDate(0, 0, 16).Format("2006-01-02"),
			byTitle["Visa"].RecommendedStartDate)
		// Packing needs 4 days, start 36 days out.
		assert.Equal(t, testNow.AddDate(0, 0, 36).Format("2006-01-02"),
			byTitle["Packing"].RecommendedStartDate)

		late, _ := e.ReorderPriority(current[:1], nil, testNow, departureIn(10))
		assert.Equal(t, models.StartImmediately, late[0].RecommendedStartDate)
	})
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 10, DaysUntil(testNow, testNow.AddDate(0, 0, 10)))
	assert.Equal(t, 0, DaysUntil(testNow, testNow))
	assert.Equal(t, -5, DaysUntil(testNow, testNow.AddDate(0, 0, -5)))
}
