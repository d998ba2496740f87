package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"helmhub/internal/tuning"
	"helmhub/internal/venues"
	"helmhub/pkg/database"
	"helmhub/pkg/models"
)

func main() {
	var (
		outPath = flag.String("out", "data/mirror.json", "output JSON path")
		limit   = flag.Int("limit", 500, "how many venues to export")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := venues.NewRepo(db)
	items, err := repo.List(ctx, venues.ListQuery{Limit: *limit})
	if err != nil {
		log.Fatalf("list venues failed: %v", err)
	}

	mirror := models.Mirror{
		GeneratedAt: time.Now().UTC(),
		Venues:      items,
		Tuning:      tuning.AllDefaultGuides(),
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("mkdir failed: %v", err)
	}

	b, err := json.MarshalIndent(mirror, "", "  ")
	if err != nil {
		log.Fatalf("marshal failed: %v", err)
	}

	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}

	log.Printf("exported %d venues and %d tuning classes to %s",
		len(mirror.Venues), len(mirror.Tuning), *outPath)
}
