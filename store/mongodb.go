package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection          = "users"
	booksCollection          = "books"
	reviewsCollection        = "reviews"
	challengesCollection     = "challenges"
	userChallengesCollection = "userChallenges"
	userBadgesCollection     = "userBadges"
	countersCollection       = "counters"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Users() *mongo.Collection {
	return db.Database.Collection(usersCollection)
}

func (db *DB) Books() *mongo.Collection {
	return db.Database.Collection(booksCollection)
}

func (db *DB) Reviews() *mongo.Collection {
	return db.Database.Collection(reviewsCollection)
}

func (db *DB) Challenges() *mongo.Collection {
	return db.Database.Collection(challengesCollection)
}

func (db *DB) UserChallenges() *mongo.Collection {
	return db.Database.Collection(userChallengesCollection)
}

func (db *DB) UserBadges() *mongo.Collection {
	return db.Database.Collection(userBadgesCollection)
}

func (db *DB) Counters() *mongo.Collection {
	return db.Database.Collection(countersCollection)
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

// NextID allocates the next sequential id for name from the counters collection.
func (db *DB) NextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.Counters().FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return counter.Seq, nil
}

// Provider lazily opens one connection and hands it out for the life of the
// process. With no URI it has nothing to hand out.
type Provider struct {
	uri     string
	dbName  string
	timeout time.Duration
	logger  *slog.Logger

	mu sync.Mutex
	db *DB
}

func NewProvider(uri, dbName string, timeout time.Duration) *Provider {
	return &Provider{uri: uri, dbName: dbName, timeout: timeout, logger: slog.Default()}
}

// Configured reports whether a connection string is present.
func (p *Provider) Configured() bool {
	return p.uri != ""
}

// Handle returns the shared connection, connecting on first use. It returns
// (nil, nil) when no connection string is configured. A failed connect is
// not cached, so the next call tries again.
func (p *Provider) Handle(ctx context.Context) (*DB, error) {
	if !p.Configured() {
		return nil, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db != nil {
		return p.db, nil
	}
	connectCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	db, err := NewMongoDB(connectCtx, p.uri, p.dbName)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	p.logger.Info("connected to MongoDB", "db", p.dbName)
	p.db = db
	return db, nil
}

func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Disconnect(ctx)
	p.db = nil
	return err
}
