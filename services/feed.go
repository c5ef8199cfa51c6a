package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"devmood-server/models"
	"devmood-server/utils"
)

// technologiesCacheKey holds the JSON-encoded facet list in redis
const technologiesCacheKey = "devmood:technologies"

// FeedPage is one page of the mood feed plus the pagination contract:
// Total counts every entry matching the predicate regardless of the page
// window, and HasMore reports whether another fetch at Offset+len(Data)
// would return anything.
type FeedPage struct {
	Data    []models.MoodResponse `json:"data"`
	Total   int64                 `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

// FeedService runs filtered, ordered, paginated reads over mood entries.
// It is read-only and holds no per-request state.
type FeedService struct {
	db       *gorm.DB
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewFeedService creates a feed service without a facet cache
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// NewCachedFeedService creates a feed service with a redis-backed facet cache
func NewCachedFeedService(db *gorm.DB, cache *redis.Client, ttl time.Duration) *FeedService {
	return &FeedService{db: db, cache: cache, cacheTTL: ttl}
}

// Query returns one page of entries matching the filters, most recent
// first. It issues two queries against the same predicate: a bounded page
// fetch and an unbounded count. The pair is not transactional; a write
// landing between them can skew Total against the page, which is accepted
// staleness for a feed.
func (s *FeedService) Query(filters MoodFilters) (*FeedPage, error) {
	var total int64
	if err := filters.Apply(s.db).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count moods: %w", err)
	}

	var moods []models.Mood
	if err := filters.Apply(s.db).
		Preload("User").
		Order("moods.date DESC, moods.id DESC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&moods).Error; err != nil {
		return nil, fmt.Errorf("fetch moods: %w", err)
	}

	data := make([]models.MoodResponse, 0, len(moods))
	for i := range moods {
		data = append(data, moods[i].ToResponse())
	}

	return &FeedPage{
		Data:    data,
		Total:   total,
		HasMore: int64(filters.Offset+len(data)) < total,
	}, nil
}

// Technologies returns the sorted, duplicate-free set of technology tags
// present across all entries. The full set is returned in one response;
// tag cardinality is bounded by distinct technologies, not entry count.
// A warm cache entry is preferred; any cache failure falls through to the
// store.
func (s *FeedService) Technologies(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if techs, err := s.cachedTechnologies(ctx); err == nil {
			return techs, nil
		} else if err != redis.Nil {
			utils.Log.WithError(err).Warn("facet cache read failed, falling back to store")
		}
	}

	techs, err := s.queryTechnologies()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.writeTechnologiesCache(ctx, techs)
	}
	return techs, nil
}

// RefreshTechnologyCache recomputes the facet list from the store and
// rewrites the cache entry. No-op without a cache.
func (s *FeedService) RefreshTechnologyCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	techs, err := s.queryTechnologies()
	if err != nil {
		return err
	}
	s.writeTechnologiesCache(ctx, techs)
	return nil
}

func (s *FeedService) queryTechnologies() ([]string, error) {
	techs := []string{}
	if err := s.db.Model(&models.Mood{}).
		Where("tech IS NOT NULL AND tech <> ''").
		Distinct("tech").
		Order("tech ASC").
		Pluck("tech", &techs).Error; err != nil {
		return nil, fmt.Errorf("fetch technologies: %w", err)
	}
	// DB collation may disagree with lexicographic order
	sort.Strings(techs)
	return techs, nil
}

func (s *FeedService) cachedTechnologies(ctx context.Context) ([]string, error) {
	raw, err := s.cache.Get(ctx, technologiesCacheKey).Result()
	if err != nil {
		return nil, err
	}
	var techs []string
	if err := json.Unmarshal([]byte(raw), &techs); err != nil {
		return nil, err
	}
	return techs, nil
}

func (s *FeedService) writeTechnologiesCache(ctx context.Context, techs []string) {
	raw, err := json.Marshal(techs)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, technologiesCacheKey, raw, s.cacheTTL).Err(); err != nil {
		utils.Log.WithError(err).Warn("facet cache write failed")
	}
}
