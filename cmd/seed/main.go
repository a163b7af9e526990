package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jordanlanch/industrycatalog/config"
	"github.com/jordanlanch/industrycatalog/pkg/cache"
	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/jordanlanch/industrycatalog/pkg/dataset"
	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/jordanlanch/industrycatalog/pkg/testdata"
)

func main() {
	fake := flag.Int("fake", 0, "number of generated industries to add to the dataset")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for generated industries")
	skipSync := flag.Bool("skip-sync", false, "do not rebuild the sector and country catalogs")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store := database.Connect(ctx, database.Options{
		URI:      cfg.MongoURI,
		Database: cfg.DBName,
		Timeout:  cfg.MongoConnectTimeout,
	}, log)
	defer store.Close(context.Background())

	if !store.Connected() {
		log.Error("document store unreachable, nothing to seed", "database", cfg.DBName)
		os.Exit(1)
	}

	opts := []industries.Option{industries.WithLogger(log)}
	if cfg.RedisURL != "" {
		// Seeding invalidates cached results the API may still hold
		if rc, err := cache.NewClient(cfg.RedisURL); err == nil {
			defer rc.Close()
			opts = append(opts, industries.WithCache(rc))
		} else {
			log.Warn("redis unavailable, cached results were not invalidated", "error", err)
		}
	}

	records := seedRecords(*fake, *seed)

	svc := industries.NewService(store, opts...)
	written, err := svc.Seed(ctx, records)
	if err != nil {
		log.Error("seed failed", "written", written, "error", err)
		os.Exit(1)
	}
	log.Info("industries seeded", "records", len(records), "written", written)

	if *skipSync {
		return
	}

	result, err := industries.NewCatalogService(store, opts...).Sync(ctx)
	if err != nil {
		log.Error("catalog sync failed", "error", err)
		os.Exit(1)
	}
	log.Info("catalog synced", "sectors_inserted", result.Sectors, "countries_inserted", result.Countries)
}

// seedRecords returns the fallback dataset followed by fake generated records
func seedRecords(fake int, seed int64) []models.Industry {
	records := dataset.Industries()
	if fake <= 0 {
		return records
	}

	gen := testdata.NewGenerator(seed)
	return append(records, gen.Industries(testdata.GeneratorConfig{Count: fake, ContactChance: 0.7})...)
}
