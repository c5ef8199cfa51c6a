package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devmood-server/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestRunMigrationsFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Mood{}))
	assert.True(t, db.Migrator().HasIndex(&models.Mood{}, "idx_moods_feed_order"))

	// Re-running is a no-op
	require.NoError(t, RunMigrations(db))
}

func TestRunMigrationsRescalesLegacyRatings(t *testing.T) {
	db := openTestDB(t)

	// A moods table from the 1-10 era: no check constraint on rating.
	// Column names are backquoted the way gorm writes DDL so the sqlite
	// migrator can parse the table when AutoMigrate diffs it later.
	require.NoError(t, db.Exec("CREATE TABLE `moods` ("+
		"`id` varchar(36) PRIMARY KEY,"+
		"`user_id` varchar(36) NOT NULL,"+
		"`emoji` varchar(16) NOT NULL,"+
		"`rating` int NOT NULL,"+
		"`comment` text,"+
		"`tech` varchar(100),"+
		"`date` datetime NOT NULL,"+
		"`created_at` datetime)").Error)

	for rating := 1; rating <= 10; rating++ {
		require.NoError(t, db.Exec(
			"INSERT INTO moods (id, user_id, emoji, rating, date) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)",
			fmt.Sprintf("legacy-%d", rating), "user-1", "😊", rating,
		).Error)
	}

	require.NoError(t, RunMigrations(db))

	// ceil(rating/2): 1,2 -> 1 ... 9,10 -> 5
	for rating := 1; rating <= 10; rating++ {
		var got int
		require.NoError(t, db.Raw(
			"SELECT rating FROM moods WHERE id = ?", fmt.Sprintf("legacy-%d", rating),
		).Scan(&got).Error)
		assert.Equal(t, (rating+1)/2, got, "legacy rating %d", rating)
	}

	var outOfBound int64
	require.NoError(t, db.Model(&models.Mood{}).Where("rating > 5 OR rating < 1").Count(&outOfBound).Error)
	assert.EqualValues(t, 0, outOfBound)
}

func TestRunMigrationsLeavesCanonicalRatingsAlone(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	user := models.User{ExternalID: "ext", Email: "a@example.com", Username: "a"}
	require.NoError(t, db.Create(&user).Error)
	mood := models.Mood{UserID: user.ID, Emoji: "😊", Rating: 4}
	require.NoError(t, db.Create(&mood).Error)

	require.NoError(t, RunMigrations(db))

	var got models.Mood
	require.NoError(t, db.First(&got, "id = ?", mood.ID).Error)
	assert.Equal(t, 4, got.Rating)
}
