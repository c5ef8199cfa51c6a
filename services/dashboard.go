package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"devmood-server/models"
)

// DashboardStats summarizes one user's journaling activity
type DashboardStats struct {
	CurrentMood  string `json:"currentMood"`
	StreakDays   int    `json:"streakDays"`
	TotalEntries int64  `json:"totalEntries"`
}

// TrendPoint is one day of the rating trend chart
type TrendPoint struct {
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

// DashboardService computes per-user activity summaries for the personal
// dashboard. Read-only, like the feed.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats returns the user's latest mood emoji, their consecutive-day
// journaling streak, and their total entry count.
func (s *DashboardService) Stats(userID string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Mood{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalEntries).Error; err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	if stats.TotalEntries == 0 {
		return stats, nil
	}

	var latest models.Mood
	if err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		First(&latest).Error; err != nil {
		return nil, fmt.Errorf("fetch latest entry: %w", err)
	}
	stats.CurrentMood = latest.Emoji

	dates, err := s.entryDates(userID)
	if err != nil {
		return nil, err
	}
	stats.StreakDays = streakDays(dates, time.Now().UTC())

	return stats, nil
}

// Trend returns the daily average rating over the trailing window, oldest
// day first, skipping days with no entries.
func (s *DashboardService) Trend(userID string, days int) ([]TrendPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var moods []models.Mood
	if err := s.db.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&moods).Error; err != nil {
		return nil, fmt.Errorf("fetch trend entries: %w", err)
	}

	type bucket struct {
		sum   int
		count int
	}
	byDay := map[string]*bucket{}
	order := []string{}
	for i := range moods {
		day := moods[i].Date.UTC().Format("2006-01-02")
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
			order = append(order, day)
		}
		b.sum += moods[i].Rating
		b.count++
	}

	points := make([]TrendPoint, 0, len(order))
	for _, day := range order {
		b := byDay[day]
		avg := float64(b.sum) / float64(b.count)
		points = append(points, TrendPoint{
			Date:   day,
			Rating: math.Round(avg*10) / 10,
		})
	}
	return points, nil
}

// entryDates returns the user's entry timestamps, most recent first
func (s *DashboardService) entryDates(userID string) ([]time.Time, error) {
	var dates []time.Time
	if err := s.db.Model(&models.Mood{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, fmt.Errorf("fetch entry dates: %w", err)
	}
	return dates, nil
}

// streakDays counts consecutive days with at least one entry, ending today
// or yesterday. A streak older than that has already been broken.
func streakDays(dates []time.Time, now time.Time) int {
	days := map[string]bool{}
	for _, d := range dates {
		days[d.UTC().Format("2006-01-02")] = true
	}

	anchor := now
	if !days[anchor.Format("2006-01-02")] {
		anchor = anchor.AddDate(0, 0, -1)
		if !days[anchor.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[anchor.Format("2006-01-02")] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}
