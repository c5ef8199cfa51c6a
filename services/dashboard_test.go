package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"devmood-server/models"
)

// noonDaysAgo pins entries to the middle of a UTC day so tests running
// near midnight don't see entries drift across day boundaries.
func noonDaysAgo(daysAgo int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).Add(12*time.Hour - time.Duration(daysAgo)*24*time.Hour)
}

func createMoodOn(t *testing.T, db *gorm.DB, user *models.User, rating int, date time.Time) *models.Mood {
	t.Helper()
	mood := &models.Mood{
		UserID: user.ID,
		Emoji:  "😊",
		Rating: rating,
		Date:   date,
	}
	require.NoError(t, db.Create(mood).Error)
	return mood
}

func TestStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alex")

	stats, err := NewDashboardService(db).Stats(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalEntries)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Empty(t, stats.CurrentMood)
}

func TestStatsCurrentMoodAndStreak(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alex")

	// Entries today, yesterday and the day before; latest is the 🎉 one
	latest := createMoodOn(t, db, user, 5, noonDaysAgo(0))
	latest.Emoji = "🎉"
	require.NoError(t, db.Save(latest).Error)
	createMoodOn(t, db, user, 3, noonDaysAgo(1))
	createMoodOn(t, db, user, 2, noonDaysAgo(2))
	// A second entry on the same day must not inflate the streak
	createMoodOn(t, db, user, 4, noonDaysAgo(1).Add(time.Hour))
	// An old entry beyond the gap does not extend it either
	createMoodOn(t, db, user, 1, noonDaysAgo(10))

	stats, err := NewDashboardService(db).Stats(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.TotalEntries)
	assert.Equal(t, "🎉", stats.CurrentMood)
	assert.Equal(t, 3, stats.StreakDays)
}

func TestStatsStreakBrokenByGap(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alex")

	// Most recent entry is three days old: the streak has lapsed
	createMoodOn(t, db, user, 4, noonDaysAgo(3))
	createMoodOn(t, db, user, 4, noonDaysAgo(4))

	stats, err := NewDashboardService(db).Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.StreakDays)
}

func TestStreakDays(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	day := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no entries", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"anchored on yesterday", []time.Time{day(1), day(2)}, 2},
		{"run ends before a gap", []time.Time{day(0), day(1), day(3), day(4)}, 2},
		{"lapsed streak", []time.Time{day(2), day(3)}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, streakDays(tc.dates, now))
		})
	}
}

func TestTrendAveragesPerDay(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alex")

	// Two entries yesterday averaging 3.5, one entry today at 5
	createMoodOn(t, db, user, 3, noonDaysAgo(1))
	createMoodOn(t, db, user, 4, noonDaysAgo(1).Add(time.Hour))
	createMoodOn(t, db, user, 5, noonDaysAgo(0))
	// Outside the window
	createMoodOn(t, db, user, 1, noonDaysAgo(40))

	points, err := NewDashboardService(db).Trend(user.ID, 30)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.InDelta(t, 3.5, points[0].Rating, 0.01)
	assert.InDelta(t, 5.0, points[1].Rating, 0.01)
	assert.Less(t, points[0].Date, points[1].Date)
}

func TestTrendIsPerUser(t *testing.T) {
	db := newTestDB(t)
	alex := createUser(t, db, "alex")
	sarah := createUser(t, db, "sarah")
	createMood(t, db, alex, 5, "", "Go", time.Hour)
	createMood(t, db, sarah, 1, "", "Go", time.Hour)

	points, err := NewDashboardService(db).Trend(alex.ID, 7)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 5.0, points[0].Rating, 0.01)
}
