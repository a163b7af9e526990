package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	CollectionIndustries = "industries"
	CollectionSectors    = "sectors"
	CollectionCountries  = "countries"
)

// Store is the capability repositories depend on. Callers branch on Connected
// or on the ok result of Collection, never on a nil handle.
type Store interface {
	Connected() bool
	Collection(name string) (*mongo.Collection, bool)
}

// Options configures the document store connection
type Options struct {
	URI      string
	Database string
	Timeout  time.Duration // connect, server selection and ping budget
	Pool     PoolConfig

	// ReadPreference routes reads to replica set members: primary (default),
	// primaryPreferred, secondary, secondaryPreferred or nearest
	ReadPreference string
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxPoolSize     uint64        // Maximum number of open connections
	MinPoolSize     uint64        // Connections kept warm
	MaxConnIdleTime time.Duration // Close idle connections after this long
}

// DefaultPoolConfig returns sensible defaults for connection pooling
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxPoolSize:     25,
		MinPoolSize:     2,
		MaxConnIdleTime: 10 * time.Minute,
	}
}

// Gateway owns the single document store connection of the process.
// A Gateway whose connection attempt failed stays unavailable until restart.
type Gateway struct {
	client   *mongo.Client
	db       *mongo.Database
	readPref *readpref.ReadPref
}

// Connect opens the connection and verifies it with a ping. It never fails:
// any error is logged and an unavailable Gateway is returned so the API can
// serve the fallback dataset.
func Connect(ctx context.Context, opts Options, log logger.Logger) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Pool == (PoolConfig{}) {
		opts.Pool = DefaultPoolConfig()
	}

	client, rp, err := open(ctx, opts)
	if err != nil {
		log.Warn("document store unavailable, serving fallback dataset",
			"database", opts.Database,
			"error", err,
		)
		return Unavailable()
	}

	log.Info("document store connected", "database", opts.Database, "read_preference", rp.Mode().String())

	return &Gateway{
		client:   client,
		db:       client.Database(opts.Database),
		readPref: rp,
	}
}

// open dials and pings with the configured read preference
func open(ctx context.Context, opts Options) (*mongo.Client, *readpref.ReadPref, error) {
	rp, err := readPreference(opts.ReadPreference)
	if err != nil {
		return nil, nil, err
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.Timeout).
		SetServerSelectionTimeout(opts.Timeout).
		SetMaxPoolSize(opts.Pool.MaxPoolSize).
		SetMinPoolSize(opts.Pool.MinPoolSize).
		SetMaxConnIdleTime(opts.Pool.MaxConnIdleTime).
		SetReadPreference(rp)

	connectCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed connecting to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, rp); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed pinging mongodb: %w", err)
	}

	return client, rp, nil
}

// readPreference parses a read preference mode. Empty means primary.
func readPreference(mode string) (*readpref.ReadPref, error) {
	if mode == "" {
		return readpref.Primary(), nil
	}
	m, err := readpref.ModeFromString(mode)
	if err != nil {
		return nil, fmt.Errorf("invalid read preference %q: %w", mode, err)
	}
	return readpref.New(m)
}

// NewGateway wraps an already connected database
func NewGateway(db *mongo.Database) *Gateway {
	if db == nil {
		return Unavailable()
	}
	return &Gateway{client: db.Client(), db: db, readPref: readpref.Primary()}
}

// Unavailable returns a Gateway in the disconnected state
func Unavailable() *Gateway {
	return &Gateway{}
}

// Connected reports whether the initial connection succeeded
func (g *Gateway) Connected() bool {
	return g != nil && g.db != nil
}

// Collection returns a handle for name, or false when the store is unavailable
func (g *Gateway) Collection(name string) (*mongo.Collection, bool) {
	if !g.Connected() {
		return nil, false
	}
	return g.db.Collection(name), true
}

// Ping checks if the document store is reachable right now
func (g *Gateway) Ping(ctx context.Context) error {
	if !g.Connected() {
		return fmt.Errorf("document store not connected")
	}
	return g.client.Ping(ctx, g.readPref)
}

// ReadPreference returns the preference used for pings, or nil when unavailable
func (g *Gateway) ReadPreference() *readpref.ReadPref {
	if !g.Connected() {
		return nil
	}
	return g.readPref
}

// Close closes the connection, if any
func (g *Gateway) Close(ctx context.Context) error {
	if !g.Connected() {
		return nil
	}
	return g.client.Disconnect(ctx)
}
