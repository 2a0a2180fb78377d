// Package service orchestrates the recommendation flow: response cache in
// front, catalog lookup behind, ranking engine in between.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dayzero/internal/platform/metrics"
	"dayzero/internal/recommend/cache"
	"dayzero/internal/recommend/engine"
	"dayzero/internal/recommend/models"
	"dayzero/internal/recommend/store/catalog"
	dErrors "dayzero/pkg/domainerrors"
)

const (
	endpointMissing = "missing_items"
	endpointReorder = "priority_reorder"

	departureDateLayout = "2006-01-02"
)

// Missing-item results are volatile (the checklist changes often);
// reorder results are stable because departure urgency moves slowly.
const (
	DefaultMissingTTL = 2 * time.Hour
	DefaultReorderTTL = 6 * time.Hour
)

// Clock abstracts wall-clock time for deterministic tests.
type Clock func() time.Time

// Service answers recommendation requests.
type Service struct {
	catalog    catalog.Store
	cache      cache.Cache
	engine     *engine.Engine
	logger     *slog.Logger
	metrics    *metrics.Metrics
	clock      Clock
	missingTTL time.Duration
	reorderTTL time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTTLs overrides the per-endpoint cache TTLs.
func WithTTLs(missing, reorder time.Duration) Option {
	return func(s *Service) {
		s.missingTTL = missing
		s.reorderTTL = reorder
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a recommendation Service.
func New(catalogStore catalog.Store, responseCache cache.Cache, eng *engine.Engine, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		catalog:    catalogStore,
		cache:      responseCache,
		engine:     eng,
		logger:     logger,
		clock:      time.Now,
		missingTTL: DefaultMissingTTL,
		reorderTTL: DefaultReorderTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// FindMissingItems recommends the top catalog items absent from the
// traveler's checklist. Results are memoized per item-set fingerprint.
func (s *Service) FindMissingItems(ctx context.Context, req models.MissingItemsRequest) (*models.MissingItemsResponse, error) {
	departure, err := s.validateRequest(req.ExistingItems, req.DepartureDate)
	if err != nil {
		return nil, err
	}

	key := cache.Key(endpointMissing, req.CountryCode, req.ProgramTypeID,
		cache.ItemsFingerprint(req.ExistingItems))
	var cached models.MissingItemsResponse
	if s.fromCache(ctx, endpointMissing, key, &cached) {
		return &cached, nil
	}

	records, err := s.catalog.LookupPopularity(ctx, req.CountryCode, req.ProgramTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog lookup failed")
	}

	now := s.clock()
	if len(records) == 0 {
		// No data is a valid empty-result response, never an error.
		return &models.MissingItemsResponse{
			MissingItems:          []models.RecommendationCandidate{},
			RecommendationSummary: "no data for this country/program",
			AnalysisSummary: fmt.Sprintf("%d days to departure",
				engine.DaysUntil(now, departure)),
		}, nil
	}

	candidates, analysis := s.engine.FindMissingItems(req.ExistingItems, records, now, departure)
	resp := &models.MissingItemsResponse{
		MissingItems:          candidates,
		TotalMissing:          len(candidates),
		RecommendationSummary: missingSummary(candidates),
		AnalysisSummary:       analysis,
	}

	s.toCache(ctx, key, resp, s.missingTTL)
	s.metrics.IncRecommendationsServed()
	return resp, nil
}

// ReorderPriority re-ranks the traveler's current checklist. Results are
// memoized per item-set and departure-date fingerprint.
func (s *Service) ReorderPriority(ctx context.Context, req models.PriorityReorderRequest) (*models.PriorityReorderResponse, error) {
	departure, err := s.validateRequest(req.CurrentItems, req.DepartureDate)
	if err != nil {
		return nil, err
	}

	fingerprint := cache.ItemsFingerprint(req.CurrentItems) + "_" +
		cache.ShortHash(req.DepartureDate, 6)
	key := cache.Key(endpointReorder, req.CountryCode, req.ProgramTypeID, fingerprint)
	var cached models.PriorityReorderResponse
	if s.fromCache(ctx, endpointReorder, key, &cached) {
		return &cached, nil
	}

	records, err := s.catalog.LookupPopularity(ctx, req.CountryCode, req.ProgramTypeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog lookup failed")
	}

	now := s.clock()
	daysUntil := engine.DaysUntil(now, departure)
	reordered, warning := s.engine.ReorderPriority(req.CurrentItems, records, now, departure)

	resp := &models.PriorityReorderResponse{
		ReorderedItems:          reordered,
		TotalReordered:          len(reordered),
		DaysUntilDeparture:      daysUntil,
		ReorderSummary:          reorderSummary(reordered, daysUntil),
		CriticalDeadlineWarning: warning,
	}

	s.toCache(ctx, key, resp, s.reorderTTL)
	s.metrics.IncReordersServed()
	return resp, nil
}

// CacheStatus reports the live cached-entry count.
func (s *Service) CacheStatus(ctx context.Context) (*models.CacheStatusResponse, error) {
	n, err := s.cache.Len(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "cache status failed")
	}
	return &models.CacheStatusResponse{TotalCachedItems: n}, nil
}

// ClearCache purges every cached response.
func (s *Service) ClearCache(ctx context.Context) (*models.CacheClearResponse, error) {
	n, err := s.cache.Purge(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "cache clear failed")
	}
	return &models.CacheClearResponse{Cleared: n}, nil
}

// validateRequest enforces the engine's preconditions: a parseable
// departure date and non-empty item titles.
func (s *Service) validateRequest(items []models.ChecklistItem, departureDate string) (time.Time, error) {
	departure, err := time.Parse(departureDateLayout, departureDate)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeBadRequest,
			"departure_date must be YYYY-MM-DD")
	}
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			return time.Time{}, dErrors.New(dErrors.CodeBadRequest,
				"item title is required")
		}
	}
	return departure, nil
}

// fromCache loads a cached response into out, reporting whether it hit.
// Cache failures degrade to a miss; stale or undecodable payloads are
// never served.
func (s *Service) fromCache(ctx context.Context, endpoint, key string, out any) bool {
	payload, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		return false
	}
	if !hit {
		s.metrics.IncCacheMiss(endpoint)
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.logger.WarnContext(ctx, "cache payload corrupt", "key", key, "error", err)
		s.metrics.IncCacheMiss(endpoint)
		return false
	}
	s.metrics.IncCacheHit(endpoint)
	return true
}

// toCache stores a response; failures are logged, not surfaced, since the
// cache is an optimization.
func (s *Service) toCache(ctx context.Context, key string, resp any, ttl time.Duration) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.WarnContext(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		s.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

func missingSummary(candidates []models.RecommendationCandidate) string {
	if len(candidates) == 0 {
		return "all essential items are already on the checklist"
	}
	critical := 0
	for _, c := range candidates {
		if c.UrgencyLevel == models.UrgencyCritical {
			critical++
		}
	}
	if critical > 0 {
		return fmt.Sprintf("%d urgent items found - start them now", critical)
	}
	return fmt.Sprintf("%d recommended items - plan around processing times", len(candidates))
}

func reorderSummary(items []models.ReorderedItem, daysUntil int) string {
	critical := 0
	for _, item := range items {
		if item.UrgencyLevel == models.UrgencyCritical {
			critical++
		}
	}
	switch {
	case critical > 0:
		return fmt.Sprintf("%d items are in a critical state", critical)
	case daysUntil <= 14:
		return fmt.Sprintf("%d days to departure - mind processing times", daysUntil)
	default:
		return fmt.Sprintf("%d days to departure - steady preparation possible", daysUntil)
	}
}
