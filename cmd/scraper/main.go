package main

import (
	"context"
	"flag"
	"log"
	"time"

	"helmhub/internal/osm"
	"helmhub/pkg/database"
)

func main() {
	var (
		seedPath = flag.String("seed", "data/venues_seed.json", "local seed file (demo-safe fallback)")
		south    = flag.Float64("south", 43.0, "bounding box south latitude")
		west     = flag.Float64("west", -5.0, "bounding box west longitude")
		north    = flag.Float64("north", 51.5, "bounding box north latitude")
		east     = flag.Float64("east", 10.5, "bounding box east longitude")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	// Source A: Overpass API (live OSM data)
	srcA := osm.NewSourceOverpass(*south, *west, *north, *east)

	// Source B: local seed file (demo-safe)
	srcB := osm.NewSourceSeedFile(*seedPath)

	agg := osm.NewAggregator(srcA, srcB)

	items, err := agg.FetchAndMerge(ctx)
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}

	log.Printf("merged venues: %d", len(items))

	if err := osm.SaveToDatabase(ctx, db, items); err != nil {
		log.Fatalf("save failed: %v", err)
	}

	log.Println("database populated at ~/.helmhub/data.db")
}
