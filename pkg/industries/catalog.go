package industries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jordanlanch/industrycatalog/pkg/cache"
	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/metrics"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	catalogCacheTTL = 1 * time.Hour
	catalogCache    = "catalog"
)

// CatalogService serves the sector and country catalogs
type CatalogService struct {
	store    database.Store
	cache    *cache.Client
	metrics  *metrics.Metrics
	log      logger.Logger
	regions  Regions
	fallback func() []models.Industry
}

// SyncResult reports how many catalog entries a sync inserted
type SyncResult struct {
	Sectors   int `json:"sectors"`
	Countries int `json:"countries"`
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store database.Store, opts ...Option) *CatalogService {
	s := newSettings(opts)
	return &CatalogService{
		store:    store,
		cache:    s.cache,
		metrics:  s.metrics,
		log:      s.log,
		regions:  s.regions,
		fallback: s.fallback,
	}
}

// Sectors returns every sector.
// Without the store the sectors are derived from the fallback dataset.
func (s *CatalogService) Sectors(ctx context.Context) ([]models.Sector, error) {
	coll, ok := s.store.Collection(database.CollectionSectors)
	if !ok {
		s.metrics.RecordFallbackQuery("sectors")
		names := distinctValues(s.fallback(), "sector")
		sectors := make([]models.Sector, 0, len(names))
		for _, name := range names {
			sectors = append(sectors, models.Sector{Name: name})
		}
		return sectors, nil
	}

	var sectors []models.Sector
	if s.cacheGet(ctx, "catalog:sectors", &sectors) {
		return sectors, nil
	}

	sectors = make([]models.Sector, 0)
	if err := s.findAll(ctx, coll, &sectors); err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}

	s.cacheSet(ctx, "catalog:sectors", sectors)
	return sectors, nil
}

// Countries returns every country.
// Without the store the countries are derived from the fallback dataset and
// carry the region they belong to.
func (s *CatalogService) Countries(ctx context.Context) ([]models.Country, error) {
	coll, ok := s.store.Collection(database.CollectionCountries)
	if !ok {
		s.metrics.RecordFallbackQuery("countries")
		names := distinctValues(s.fallback(), "country")
		countries := make([]models.Country, 0, len(names))
		for _, name := range names {
			countries = append(countries, models.Country{Name: name, Region: s.regions.RegionOf(name)})
		}
		return countries, nil
	}

	var countries []models.Country
	if s.cacheGet(ctx, "catalog:countries", &countries) {
		return countries, nil
	}

	countries = make([]models.Country, 0)
	if err := s.findAll(ctx, coll, &countries); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	s.cacheSet(ctx, "catalog:countries", countries)
	return countries, nil
}

// SectorByName returns the sector with exactly this name
func (s *CatalogService) SectorByName(ctx context.Context, name string) (*models.Sector, error) {
	coll, ok := s.store.Collection(database.CollectionSectors)
	if !ok {
		sectors, _ := s.Sectors(ctx)
		for _, sector := range sectors {
			if sector.Name == name {
				return &sector, nil
			}
		}
		return nil, ErrNotFound
	}

	var sector models.Sector
	if err := s.findOne(ctx, coll, name, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

// CountryByName returns the country with exactly this name
func (s *CatalogService) CountryByName(ctx context.Context, name string) (*models.Country, error) {
	coll, ok := s.store.Collection(database.CollectionCountries)
	if !ok {
		countries, _ := s.Countries(ctx)
		for _, country := range countries {
			if country.Name == name {
				return &country, nil
			}
		}
		return nil, ErrNotFound
	}

	var country models.Country
	if err := s.findOne(ctx, coll, name, &country); err != nil {
		return nil, err
	}
	return &country, nil
}

// Sync makes sure every sector and country referenced by an industry has a
// catalog entry. Existing entries are kept; countries get their region set.
func (s *CatalogService) Sync(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	industriesColl, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		return result, ErrReadOnly
	}
	sectorsColl, _ := s.store.Collection(database.CollectionSectors)
	countriesColl, _ := s.store.Collection(database.CollectionCountries)

	sectors, err := distinctStrings(ctx, industriesColl, "sector", s.metrics)
	if err != nil {
		return result, err
	}
	for _, name := range sectors {
		inserted, err := s.upsert(ctx, sectorsColl, name, bson.D{{Key: "name", Value: name}})
		if err != nil {
			return result, fmt.Errorf("failed to sync sector %s: %w", name, err)
		}
		if inserted {
			result.Sectors++
		}
	}

	countries, err := distinctStrings(ctx, industriesColl, "country", s.metrics)
	if err != nil {
		return result, err
	}
	for _, name := range countries {
		set := bson.D{{Key: "name", Value: name}}
		if region := s.regions.RegionOf(name); region != "" {
			set = append(set, bson.E{Key: "region", Value: region})
		}
		inserted, err := s.upsert(ctx, countriesColl, name, set)
		if err != nil {
			return result, fmt.Errorf("failed to sync country %s: %w", name, err)
		}
		if inserted {
			result.Countries++
		}
	}

	if s.cache != nil {
		if _, err := s.cache.DeletePattern(ctx, "catalog:*"); err != nil {
			s.log.Warn("cache invalidation failed", "error", err)
		}
	}

	s.log.Info("catalog synced",
		"sectors_total", len(sectors),
		"countries_total", len(countries),
		"sectors_inserted", result.Sectors,
		"countries_inserted", result.Countries,
	)
	return result, nil
}

func (s *CatalogService) upsert(ctx context.Context, coll *mongo.Collection, name string, set bson.D) (bool, error) {
	start := time.Now()
	res, err := coll.UpdateOne(ctx,
		bson.D{{Key: "name", Value: name}},
		bson.D{{Key: "$set", Value: set}},
		options.Update().SetUpsert(true),
	)
	s.metrics.RecordStoreQuery("upsert", time.Since(start))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (s *CatalogService) findAll(ctx context.Context, coll *mongo.Collection, dest interface{}) error {
	start := time.Now()
	defer func() { s.metrics.RecordStoreQuery("find", time.Since(start)) }()

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, dest)
}

func (s *CatalogService) findOne(ctx context.Context, coll *mongo.Collection, name string, dest interface{}) error {
	start := time.Now()
	err := coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(dest)
	s.metrics.RecordStoreQuery("find_one", time.Since(start))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", name, err)
	}
	return nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	s.metrics.RecordCacheHit(catalogCache, hit)
	return hit
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, catalogCacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// distinctValues returns the sorted distinct non-empty values of field
func distinctValues(records []models.Industry, field string) []string {
	values := make([]string, 0, len(records))
	for _, rec := range records {
		switch field {
		case "sector":
			values = append(values, rec.Sector)
		case "country":
			values = append(values, rec.Country)
		case "status":
			values = append(values, rec.Status)
		}
	}
	return sortedUnique(values)
}

func distinctStrings(ctx context.Context, coll *mongo.Collection, field string, m *metrics.Metrics) ([]string, error) {
	start := time.Now()
	raw, err := coll.Distinct(ctx, field, bson.D{})
	m.RecordStoreQuery("distinct", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			values = append(values, str)
		}
	}
	return sortedUnique(values), nil
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
