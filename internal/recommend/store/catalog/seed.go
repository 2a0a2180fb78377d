package catalog

import "dayzero/internal/recommend/models"

// Seed loads a small development dataset into the in-memory store so the
// service answers without a database.
func Seed(s *InMemoryStore) {
	s.Put("US", 1, []models.PopularityRecord{
		{ItemTitle: "Passport check", ItemDescription: "verify passport validity for the full stay", ItemTag: models.TagDocument, PopularityRate: 0.98, AvgOffsetDays: -120, PriorityScore: 1},
		{ItemTitle: "Visa interview", ItemDescription: "book the embassy interview slot", ItemTag: models.TagDocument, PopularityRate: 0.96, AvgOffsetDays: -90, PriorityScore: 1},
		{ItemTitle: "SEVIS fee", ItemDescription: "pay the SEVIS I-901 fee", ItemTag: models.TagDocument, PopularityRate: 0.93, AvgOffsetDays: -75, PriorityScore: 2},
		{ItemTitle: "Travel insurance", ItemDescription: "enroll in overseas coverage", ItemTag: models.TagInsurance, PopularityRate: 0.88, AvgOffsetDays: -21, PriorityScore: 3},
		{ItemTitle: "Currency exchange", ItemDescription: "exchange spending money", ItemTag: models.TagExchange, PopularityRate: 0.81, AvgOffsetDays: -10, PriorityScore: 5},
		{ItemTitle: "Dormitory application", ItemDescription: "submit the housing application", ItemTag: models.TagDocument, PopularityRate: 0.77, AvgOffsetDays: -60, PriorityScore: 2},
		{ItemTitle: "Packing", ItemDescription: "pack luggage", ItemTag: models.TagEtc, PopularityRate: 0.99, AvgOffsetDays: -3, PriorityScore: 8},
	})
}
