package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pmackar/gamifyit/internal/database"
	"github.com/pmackar/gamifyit/internal/league"
	"github.com/pmackar/gamifyit/internal/rewards"
	"github.com/pmackar/gamifyit/internal/season"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "gamifyit.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, dbTeardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()
	defer db.Close()

	seasonStore := season.New(db)
	leagueStore := league.New(db)
	now := time.Now().UTC()

	// A demo season: 10 tiers, 100 XP each, milestones every fifth tier.
	demo := &season.Season{
		Name:      "Demo Season",
		TierCount: 10,
		XPPerTier: 100,
		StartsAt:  now.AddDate(0, 0, -7),
		EndsAt:    now.AddDate(0, 3, 0),
	}
	for tier := 1; tier <= demo.TierCount; tier++ {
		tr := season.TierReward{
			TierNumber: tier,
			Free: &rewards.Descriptor{
				Type:   rewards.TypeXP,
				Code:   fmt.Sprintf("xp-boost-%d", tier),
				Amount: int64(tier * 10),
			},
			Premium: &rewards.Descriptor{
				Type: rewards.TypeItem,
				Code: fmt.Sprintf("crate-%d", tier),
			},
			IsMilestone: tier%5 == 0,
		}
		if tr.IsMilestone {
			tr.Premium = &rewards.Descriptor{
				Type: rewards.TypeCosmetic,
				Code: fmt.Sprintf("milestone-frame-%d", tier),
			}
		}
		demo.Rewards = append(demo.Rewards, tr)
	}
	if err := seasonStore.CreateSeason(demo); err != nil {
		log.Fatalf("Failed to seed season: %s", err)
	}
	log.Info("Seeded demo season", "seasonID", demo.ID, "tiers", demo.TierCount)

	// A dozen users in this week's Bronze leagues with spread-out scores.
	const numUsers = 12
	for i := 1; i <= numUsers; i++ {
		userID := fmt.Sprintf("demo-user-%d", i)
		result, err := leagueStore.EnsureMembership(userID, now)
		if err != nil {
			log.Fatalf("Failed to seed membership for %s: %s", userID, err)
		}
		score := int64(rand.Intn(500))
		if err := leagueStore.AddWeeklyScore(userID, score, now); err != nil {
			log.Fatalf("Failed to seed score for %s: %s", userID, err)
		}
		if _, err := seasonStore.AddXP(demo.ID, userID, int64(rand.Intn(1000))); err != nil {
			log.Fatalf("Failed to seed season xp for %s: %s", userID, err)
		}
		log.Info("Seeded user", "userID", userID, "leagueID", result.LeagueID, "score", score)
	}

	log.Info("Seeding complete.", "users", numUsers)
}
