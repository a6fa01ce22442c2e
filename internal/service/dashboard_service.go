package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sheriffsaka/alibaanah-v1/internal/dto"
	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

const (
	statsCacheKeyAll    = "dash:stats:all"
	statsCacheKeyPrefix = "dash:stats:"
	upcomingSlotLimit   = 5
)

type dashboardLedger interface {
	Stats(gender *models.Gender) models.Stats
	ListSlots() []models.Slot
}

// DashboardService aggregates intake statistics for the staff dashboard. It
// serves from cache when possible and repopulates on miss.
type DashboardService struct {
	ledger   dashboardLedger
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(ledger dashboardLedger, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &DashboardService{ledger: ledger, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Stats returns the dashboard payload, scoped to a gender when one is given.
// The second return reports whether the cache served the request.
func (s *DashboardService) Stats(ctx context.Context, gender *models.Gender) (*dto.DashboardResponse, bool, error) {
	key := statsCacheKeyAll
	if gender != nil {
		key = statsCacheKeyPrefix + string(*gender)
	}

	var cached dto.DashboardResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return &cached, true, nil
	}

	payload := dto.DashboardResponse{
		Stats:         s.ledger.Stats(gender),
		UpcomingSlots: s.upcomingSlots(gender),
		GeneratedAt:   s.now().UTC(),
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache store failed", zap.String("key", key), zap.Error(err))
	}
	return &payload, false, nil
}

// upcomingSlots returns slots on or after today with seats remaining, soonest
// first, capped at upcomingSlotLimit.
func (s *DashboardService) upcomingSlots(gender *models.Gender) []models.Slot {
	today := s.now().UTC().Format("2006-01-02")
	slots := s.ledger.ListSlots()

	upcoming := make([]models.Slot, 0, upcomingSlotLimit)
	for _, slot := range slots {
		if slot.Date < today {
			continue
		}
		if gender != nil && slot.Gender != *gender {
			continue
		}
		if slot.Remaining() <= 0 {
			continue
		}
		upcoming = append(upcoming, slot)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].StartTime < upcoming[j].StartTime
	})
	if len(upcoming) > upcomingSlotLimit {
		upcoming = upcoming[:upcomingSlotLimit]
	}
	return upcoming
}
