package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayzero/internal/recommend/cache"
	"dayzero/internal/recommend/engine"
	"dayzero/internal/recommend/models"
	"dayzero/internal/recommend/store/catalog"
	dErrors "dayzero/pkg/domainerrors"
)

var serviceNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	store   *catalog.InMemoryStore
	cache   *cache.InMemoryCache
	now     time.Time
	advance func(d time.Duration)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: serviceNow}
	clock := func() time.Time { return f.now }
	f.advance = func(d time.Duration) { f.now = f.now.Add(d) }

	f.store = catalog.NewInMemory()
	catalog.Seed(f.store)
	f.cache = cache.NewInMemory(cache.WithClock(clock))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	f.svc = New(f.store, f.cache, engine.NewDefault(), logger, WithClock(clock))
	return f
}

func missingRequest(departure string) models.MissingItemsRequest {
	return models.MissingItemsRequest{
		ExistingItems: []models.ChecklistItem{
			{Title: "Passport check", Tag: models.TagDocument, Status: models.StatusDone},
		},
		CountryCode:   "US",
		ProgramTypeID: 1,
		DepartureDate: departure,
	}
}

func TestFindMissingItemsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("malformed departure date", func(t *testing.T) {
		_, err := f.svc.FindMissingItems(ctx, missingRequest("03/15/2026"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("empty item title", func(t *testing.T) {
		req := missingRequest("2026-05-01")
		req.ExistingItems = append(req.ExistingItems, models.ChecklistItem{Title: "  "})
		_, err := f.svc.FindMissingItems(ctx, req)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func TestFindMissingItems(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked candidates for seeded catalog", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.MissingItems)
		assert.Equal(t, len(resp.MissingItems), resp.TotalMissing)
		assert.NotEmpty(t, resp.AnalysisSummary)
		for _, c := range resp.MissingItems {
			assert.NotEqual(t, "Passport check", c.ItemTitle)
		}
	})

	t.Run("no catalog data yields an empty valid response", func(t *testing.T) {
		f := newFixture(t)
		req := missingRequest("2026-05-01")
		req.CountryCode = "ZZ"
		resp, err := f.svc.FindMissingItems(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, resp.MissingItems)
		assert.Contains(t, resp.RecommendationSummary, "no data")

		n, err := f.cache.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n, "no-data responses are not cached")
	})

	t.Run("catalog failure surfaces as unavailable", func(t *testing.T) {
		f := newFixture(t)
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		svc := New(catalog.NewFailing("connection refused"), f.cache, engine.NewDefault(), logger)
		_, err := svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnavailable))
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
		require.NoError(t, err)

		// Changing the catalog must not change the cached answer.
		f.store.Put("US", 1, nil)
		second, err := f.svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("cache expires after the missing-items TTL", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
		require.NoError(t, err)

		f.store.Put("US", 1, nil)
		f.advance(DefaultMissingTTL + time.Minute)

		resp, err := f.svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
		require.NoError(t, err)
		assert.Contains(t, resp.RecommendationSummary, "no data",
			"expired cache entry must not be served")
	})
}

func TestReorderPriority(t *testing.T) {
	ctx := context.Background()

	reorderRequest := func(departure string) models.PriorityReorderRequest {
		return models.PriorityReorderRequest{
			CurrentItems: []models.ChecklistItem{
				{Title: "Packing", Tag: models.TagEtc},
				{Title: "Visa interview", Tag: models.TagDocument, IsFixed: true},
			},
			CountryCode:   "US",
			ProgramTypeID: 1,
			DepartureDate: departure,
		}
	}

	t.Run("reorders and reports days until departure", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.ReorderPriority(ctx, reorderRequest("2026-04-10"))
		require.NoError(t, err)
		require.Len(t, resp.ReorderedItems, 2)
		// 2026-03-01T09:00 to 2026-04-10T00:00 is 39 whole days.
		assert.Equal(t, 39, resp.DaysUntilDeparture)
		assert.Equal(t, "Visa interview", resp.ReorderedItems[0].Title)
	})

	t.Run("critical items produce a deadline warning", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.ReorderPriority(ctx, reorderRequest("2026-03-05"))
		require.NoError(t, err)
		require.NotNil(t, resp.CriticalDeadlineWarning)
		assert.Contains(t, *resp.CriticalDeadlineWarning, "Visa interview")
	})

	t.Run("cache key includes the departure date", func(t *testing.T) {
		f := newFixture(t)
		near, err := f.svc.ReorderPriority(ctx, reorderRequest("2026-03-05"))
		require.NoError(t, err)
		far, err := f.svc.ReorderPriority(ctx, reorderRequest("2026-08-01"))
		require.NoError(t, err)
		assert.NotEqual(t, near.DaysUntilDeparture, far.DaysUntilDeparture)

		n, err := f.cache.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n, "two departure dates mean two cache entries")
	})

	t.Run("malformed departure date", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ReorderPriority(ctx, reorderRequest("soon"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func TestCacheEndpoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.FindMissingItems(ctx, missingRequest("2026-05-01"))
	require.NoError(t, err)

	status, err := f.svc.CacheStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalCachedItems)

	cleared, err := f.svc.ClearCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared.Cleared)

	status, err = f.svc.CacheStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.TotalCachedItems)
}
