package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/swiss-tournament/internal/database"
	"github.com/mauv0809/swiss-tournament/internal/metrics"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

const (
	numPlayers = 15
	numRounds  = 4
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": os.Getenv("TURSO_PRIMARY_URL"),
		"TURSO_AUTH_TOKEN":  os.Getenv("TURSO_AUTH_TOKEN"),
	}
	if value, ok := os.LookupEnv("MIGRATIONS_DIR"); ok {
		config["MIGRATIONS_DIR"] = value
	}
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return config
}

func main() {
	log.Info("Starting tournament seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := tournament.New(database.NewConnector(db), metrics.NewService())

	if err := store.DeleteMatches(ctx); err != nil {
		log.Fatalf("Failed to clear matches: %s", err)
	}
	if err := store.DeletePlayers(ctx); err != nil {
		log.Fatalf("Failed to clear players: %s", err)
	}

	for i := 1; i <= numPlayers; i++ {
		if _, err := store.RegisterPlayer(ctx, fmt.Sprintf("Seeder Player %02d", i)); err != nil {
			log.Fatalf("Failed to register player %d: %s", i, err)
		}
	}
	log.Info("Registered players", "count", numPlayers)

	startTime := time.Now()
	for round := 1; round <= numRounds; round++ {
		pairings, err := store.SwissPairings(ctx)
		if err != nil {
			log.Fatalf("Failed to pair round %d: %s", round, err)
		}
		for _, p := range pairings {
			if p.Bye {
				err = store.ReportBye(ctx, p.ID1)
			} else if rand.Intn(2) == 0 {
				err = store.ReportMatch(ctx, p.ID1, p.ID2)
			} else {
				err = store.ReportMatch(ctx, p.ID2, p.ID1)
			}
			if err != nil {
				log.Fatalf("Failed to report round %d: %s", round, err)
			}
		}
		log.Info("Played round", "round", round, "pairings", len(pairings))
	}

	standings, err := store.PlayerStandings(ctx)
	if err != nil {
		log.Fatalf("Failed to read standings: %s", err)
	}
	for i, st := range standings {
		log.Info("Final standing", "rank", i+1, "name", st.Name, "wins", st.Wins, "matches", st.Matches)
	}
	log.Info("Successfully seeded tournament.", "duration", time.Since(startTime))
}
