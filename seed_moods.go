package main

import (
	"log"
	"time"

	"devmood-server/database"
	"devmood-server/models"
)

// seedDemoData loads a small set of users and mood entries for local
// development. It only runs on an empty moods table.
func seedDemoData() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.Mood{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("ℹ️ Moods table not empty, skipping demo seed")
		return nil
	}

	now := time.Now().UTC()
	str := func(s string) *string { return &s }

	users := []models.User{
		{
			ExternalID: "user_2f8k7c9j4m2p5x8y1q6w3z7b",
			Email:      "alex@example.com",
			Username:   "alex",
			FirstName:  "Alex",
			LastName:   "Doe",
			Moods: []models.Mood{
				{Emoji: "😊", Rating: 5, Comment: str("Feeling great! Just deployed a new feature."), Tech: str("Next.js"), Date: now.Add(-2 * time.Hour)},
				{Emoji: "🚀", Rating: 5, Comment: str("Shipped new feature! Team loved it."), Tech: str("React"), Date: now.Add(-24 * time.Hour)},
				{Emoji: "🤔", Rating: 3, Comment: str("Debugging session with CSS grid."), Tech: str("CSS"), Date: now.Add(-48 * time.Hour)},
			},
		},
		{
			ExternalID: "user_8y1q6w3z7b2f8k7c9j4m2p5x",
			Email:      "sarah@example.com",
			Username:   "sarah",
			FirstName:  "Sarah",
			LastName:   "Smith",
			Moods: []models.Mood{
				{Emoji: "💡", Rating: 4, Comment: str("Had a breakthrough with the algorithm!"), Tech: str("Python"), Date: now.Add(-4 * time.Hour)},
				{Emoji: "😴", Rating: 2, Comment: str("Late night coding session. Need coffee."), Tech: str("Node.js"), Date: now.Add(-12 * time.Hour)},
				{Emoji: "🎉", Rating: 5, Comment: str("Finally fixed that memory leak!"), Tech: str("JavaScript"), Date: now.Add(-36 * time.Hour)},
			},
		},
		{
			ExternalID: "user_7c9j4m2p5x8y1q6w3z7b2f8k",
			Email:      "mike@example.com",
			Username:   "mike",
			FirstName:  "Mike",
			LastName:   "Johnson",
			Moods: []models.Mood{
				{Emoji: "😅", Rating: 3, Comment: str("Wrestling with a flaky integration test."), Tech: str("TypeScript"), Date: now.Add(-6 * time.Hour)},
				{Emoji: "🔥", Rating: 5, Comment: str("Cut container build time in half."), Tech: str("Docker"), Date: now.Add(-20 * time.Hour)},
				{Emoji: "😵", Rating: 1, Comment: str("Production incident at 3am."), Tech: str("Kubernetes"), Date: now.Add(-60 * time.Hour)},
			},
		},
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d demo users with mood entries", len(users))
	return nil
}
