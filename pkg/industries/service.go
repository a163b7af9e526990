package industries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jordanlanch/industrycatalog/pkg/cache"
	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/jordanlanch/industrycatalog/pkg/dataset"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/metrics"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no record matches the identifier
	ErrNotFound = errors.New("not found")

	// ErrReadOnly is returned by writes while the document store is unavailable
	ErrReadOnly = errors.New("catalog is read-only: document store unavailable")
)

const (
	listCacheTTL    = 5 * time.Minute
	industriesCache = "industries"
)

// Service handles industry reads and writes against the document store,
// falling back to the read-only dataset when the store is unavailable
type Service struct {
	store            database.Store
	cache            *cache.Client
	metrics          *metrics.Metrics
	log              logger.Logger
	regions          Regions
	fallback         func() []models.Industry
	paginateFallback bool
	now              func() time.Time
}

// Option configures a Service or CatalogService
type Option func(*settings)

type settings struct {
	cache            *cache.Client
	metrics          *metrics.Metrics
	log              logger.Logger
	regions          Regions
	fallback         func() []models.Industry
	paginateFallback bool
	now              func() time.Time
}

// WithCache enables result caching. A nil client disables it.
func WithCache(c *cache.Client) Option {
	return func(s *settings) { s.cache = c }
}

// WithMetrics records store, fallback and cache metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithRegions replaces the region table used by search
func WithRegions(r Regions) Option {
	return func(s *settings) { s.regions = r }
}

// WithPaginateFallback makes fallback reads honor limit and skip
func WithPaginateFallback(enabled bool) Option {
	return func(s *settings) { s.paginateFallback = enabled }
}

// WithFallback replaces the fallback dataset source
func WithFallback(source func() []models.Industry) Option {
	return func(s *settings) { s.fallback = source }
}

// WithClock sets the time source used for metadata timestamps
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func newSettings(opts []Option) settings {
	s := settings{
		log:      logger.Discard(),
		regions:  DefaultRegions(),
		fallback: dataset.Industries,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewService creates a new industry service
func NewService(store database.Store, opts ...Option) *Service {
	s := newSettings(opts)
	return &Service{
		store:            store,
		cache:            s.cache,
		metrics:          s.metrics,
		log:              s.log,
		regions:          s.regions,
		fallback:         s.fallback,
		paginateFallback: s.paginateFallback,
		now:              s.now,
	}
}

// Regions returns the region table used by search
func (s *Service) Regions() Regions {
	return s.regions
}

// GetAll returns the industries matching every supplied filter. Store reads
// come back in _id order.
func (s *Service) GetAll(ctx context.Context, filters models.IndustryFilters, page models.Page) ([]models.Industry, error) {
	page = page.Normalize()

	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		s.metrics.RecordFallbackQuery("get_all")
		results := make([]models.Industry, 0)
		for _, ind := range s.fallback() {
			if MatchesFilters(ind, filters) {
				results = append(results, ind)
			}
		}
		return s.fallbackPage(results, page), nil
	}

	cacheKey := fmt.Sprintf("industries:list:%q:%q:%q:%d:%d",
		filters.Sector, filters.Country, filters.Status, page.Limit, page.Skip)

	var cached []models.Industry
	if s.cacheGet(ctx, cacheKey, &cached) {
		return restoreObjectIDs(cached), nil
	}

	results, err := s.find(ctx, coll, FilterQuery(filters), page)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, results)
	return results, nil
}

// Search returns the industries matching the text, sector and region criteria
func (s *Service) Search(ctx context.Context, query models.SearchQuery, page models.Page) ([]models.Industry, error) {
	page = page.Normalize()

	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		s.metrics.RecordFallbackQuery("search")
		results := make([]models.Industry, 0)
		for _, ind := range s.fallback() {
			if MatchesSearch(ind, query, s.regions) {
				results = append(results, ind)
			}
		}
		return s.fallbackPage(results, page), nil
	}

	cacheKey := fmt.Sprintf("industries:search:%q:%q:%q:%d:%d",
		query.Query, query.Sector, query.Region, page.Limit, page.Skip)

	var cached []models.Industry
	if s.cacheGet(ctx, cacheKey, &cached) {
		return restoreObjectIDs(cached), nil
	}

	results, err := s.find(ctx, coll, SearchFilter(query, s.regions), page)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, results)
	return results, nil
}

// GetByID returns a single industry. A malformed identifier is not found.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Industry, error) {
	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		s.metrics.RecordFallbackQuery("get_by_id")
		for _, ind := range s.fallback() {
			if ind.ID == id {
				return &ind, nil
			}
		}
		return nil, ErrNotFound
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	start := time.Now()
	var ind models.Industry
	err = coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&ind)
	s.metrics.RecordStoreQuery("find_one", time.Since(start))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get industry %s: %w", id, err)
	}

	ind.ID = ind.MongoID.Hex()
	return &ind, nil
}

// Create persists a new industry and returns it with its assigned identifier
func (s *Service) Create(ctx context.Context, ind *models.Industry) (*models.Industry, error) {
	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		return nil, ErrReadOnly
	}

	created := ind.Clone()
	now := s.timestamp()
	created.MongoID = primitive.NewObjectID()
	created.Metadata = &models.Metadata{CreatedAt: now, UpdatedAt: now, Verified: false}
	if created.Products == nil {
		created.Products = []string{}
	}

	start := time.Now()
	_, err := coll.InsertOne(ctx, created)
	s.metrics.RecordStoreQuery("insert", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to create industry: %w", err)
	}

	created.ID = created.MongoID.Hex()
	s.metrics.RecordWrite("create")
	s.invalidate(ctx)

	s.log.Info("industry created", "id", created.ID, "name", created.Name)
	return &created, nil
}

// Update applies the supplied fields and reports whether the record exists
func (s *Service) Update(ctx context.Context, id string, patch models.IndustryPatch) (bool, error) {
	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		return false, ErrReadOnly
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set, err := patchDocument(patch)
	if err != nil {
		return false, err
	}
	set = append(set, bson.E{Key: "metadata.updated_at", Value: s.timestamp()})

	start := time.Now()
	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
	s.metrics.RecordStoreQuery("update", time.Since(start))
	if err != nil {
		return false, fmt.Errorf("failed to update industry %s: %w", id, err)
	}

	if res.MatchedCount == 0 {
		return false, nil
	}

	if res.ModifiedCount > 0 {
		s.metrics.RecordWrite("update")
		s.invalidate(ctx)
	}
	return true, nil
}

// Delete removes the record and reports whether one was removed
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		return false, ErrReadOnly
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	start := time.Now()
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	s.metrics.RecordStoreQuery("delete", time.Since(start))
	if err != nil {
		return false, fmt.Errorf("failed to delete industry %s: %w", id, err)
	}

	if res.DeletedCount == 0 {
		return false, nil
	}

	s.metrics.RecordWrite("delete")
	s.invalidate(ctx)
	return true, nil
}

// Seed upserts the given industries by name and returns how many were
// inserted or modified
func (s *Service) Seed(ctx context.Context, records []models.Industry) (int, error) {
	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		return 0, ErrReadOnly
	}

	written := 0
	for _, rec := range records {
		doc := rec.Clone()
		doc.MongoID = primitive.NilObjectID
		now := s.timestamp()
		if doc.Metadata == nil {
			doc.Metadata = &models.Metadata{CreatedAt: now, UpdatedAt: now}
		}

		start := time.Now()
		res, err := coll.ReplaceOne(ctx,
			bson.D{{Key: "name", Value: doc.Name}},
			doc,
			options.Replace().SetUpsert(true),
		)
		s.metrics.RecordStoreQuery("upsert", time.Since(start))
		if err != nil {
			return written, fmt.Errorf("failed to seed industry %s: %w", doc.Name, err)
		}

		if res.UpsertedCount > 0 || res.ModifiedCount > 0 {
			written++
		}
	}

	if written > 0 {
		s.metrics.RecordWrite("seed")
	}
	s.invalidate(ctx)
	return written, nil
}

// Distinct returns the distinct non-empty values of field across all industries
func (s *Service) Distinct(ctx context.Context, field string) ([]string, error) {
	coll, ok := s.store.Collection(database.CollectionIndustries)
	if !ok {
		return distinctValues(s.fallback(), field), nil
	}

	return distinctStrings(ctx, coll, field, s.metrics)
}

// InvalidateCache removes every cached list and search result
func (s *Service) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	_, err := s.cache.DeletePattern(ctx, "industries:*")
	return err
}

func (s *Service) find(ctx context.Context, coll *mongo.Collection, filter bson.D, page models.Page) ([]models.Industry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))

	start := time.Now()
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		s.metrics.RecordStoreQuery("find", time.Since(start))
		return nil, fmt.Errorf("failed to query industries: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]models.Industry, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode industries: %w", err)
	}
	s.metrics.RecordStoreQuery("find", time.Since(start))

	for i := range results {
		results[i].ID = results[i].MongoID.Hex()
	}
	return results, nil
}

// timestamp is the current time at the store's millisecond resolution
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// restoreObjectIDs rebuilds MongoID from ID, which is all the JSON cache keeps
func restoreObjectIDs(records []models.Industry) []models.Industry {
	for i := range records {
		if oid, err := primitive.ObjectIDFromHex(records[i].ID); err == nil {
			records[i].MongoID = oid
		}
	}
	return records
}

func (s *Service) fallbackPage(results []models.Industry, page models.Page) []models.Industry {
	if !s.paginateFallback {
		return results
	}
	return models.Apply(results, page)
}

func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	s.metrics.RecordCacheHit(industriesCache, hit)
	return hit
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, listCacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.InvalidateCache(ctx); err != nil {
		s.log.Warn("cache invalidation failed", "error", err)
	}
}

// patchDocument turns the non-nil fields of patch into a $set document
func patchDocument(patch models.IndustryPatch) (bson.D, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	var set bson.D
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	return set, nil
}
