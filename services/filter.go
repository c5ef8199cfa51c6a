package services

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"devmood-server/config"
	"devmood-server/models"
)

// FilterAll is the sentinel query value meaning "no constraint" for the
// tech and rating filters.
const FilterAll = "all"

// MoodFilters is the per-request predicate over mood entries plus the
// validated page window. Zero values contribute no constraint.
type MoodFilters struct {
	Tech   string
	Rating string
	Search string
	UserID string // restricts the feed to one owner; used by /moods/mine
	Limit  int
	Offset int
}

// ParseMoodFilters builds MoodFilters from raw query parameters. Malformed
// numeric values fall back to defaults instead of rejecting the request, and
// the limit is clamped so a single page can never exceed the configured max.
func ParseMoodFilters(values url.Values) MoodFilters {
	defaultLimit, maxLimit := 20, 100
	if config.AppConfig != nil {
		defaultLimit = config.AppConfig.Feed.DefaultLimit
		maxLimit = config.AppConfig.Feed.MaxLimit
	}

	limit, err := strconv.Atoi(values.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, err := strconv.Atoi(values.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return MoodFilters{
		Tech:   values.Get("tech"),
		Rating: values.Get("rating"),
		Search: values.Get("search"),
		Limit:  limit,
		Offset: offset,
	}
}

// Apply attaches the conjunctive predicate to a query. Absent filters are
// elided entirely rather than included as always-true clauses. Matching is
// case-insensitive via LOWER(...) LIKE so the behavior is identical across
// Postgres and SQLite.
func (f MoodFilters) Apply(db *gorm.DB) *gorm.DB {
	query := db.Model(&models.Mood{})

	if f.UserID != "" {
		query = query.Where("moods.user_id = ?", f.UserID)
	}

	if f.Tech != "" && !strings.EqualFold(f.Tech, FilterAll) {
		query = query.Where("LOWER(moods.tech) LIKE ?", containsPattern(f.Tech))
	}

	if f.Rating != "" && !strings.EqualFold(f.Rating, FilterAll) {
		if rating, err := strconv.Atoi(f.Rating); err == nil {
			query = query.Where("moods.rating >= ?", rating)
			// "1" selects the rough band [1,2]; an open-ended >=1 would
			// match every entry.
			if f.Rating == "1" {
				query = query.Where("moods.rating <= ?", 2)
			}
		}
	}

	if f.Search != "" {
		// Identity matching strips a leading "@" so "@alex" finds user alex;
		// the comment is matched against the search string as typed.
		identity := strings.TrimPrefix(f.Search, "@")
		query = query.
			Joins("JOIN users ON users.id = moods.user_id").
			Where("LOWER(moods.comment) LIKE ? OR LOWER(users.username) LIKE ?",
				containsPattern(f.Search), containsPattern(identity))
	}

	return query
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
