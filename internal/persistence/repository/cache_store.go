package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cindermoth/reliefgrid/internal/infrastructure/cache"
	"github.com/cindermoth/reliefgrid/internal/persistence/db"
)

// cachedEntry is the persisted cache document. Value stays opaque JSON so
// the mongo and in-memory backends serve identical payloads.
type cachedEntry struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoCacheStore backs the response cache with a collection. Expiry is
// enforced twice: reads filter on expires_at, and a TTL index reaps stale
// documents server-side.
type MongoCacheStore struct {
	db *mongo.Database
}

func NewMongoCacheStore(db *mongo.Database) *MongoCacheStore {
	return &MongoCacheStore{
		db: db,
	}
}

func (s *MongoCacheStore) Get(ctx context.Context, key string, valuePtr any) error {
	collection := s.db.Collection(db.CacheEntriesCollection)

	// $gt, not $gte: an entry at its exact deadline is already a miss.
	filter := bson.M{
		"_id":        key,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}

	var entry cachedEntry
	if err := collection.FindOne(ctx, filter).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cache.ErrCacheMiss
		}
		return err
	}

	return json.Unmarshal(entry.Value, valuePtr)
}

func (s *MongoCacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize cached value: %w", err)
	}

	entry := cachedEntry{
		Key:       key,
		Value:     raw,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	collection := s.db.Collection(db.CacheEntriesCollection)
	opts := options.Replace().SetUpsert(true)

	_, err = collection.ReplaceOne(ctx, bson.M{"_id": key}, entry, opts)
	return err
}

// Close is a no-op; the mongo client's lifecycle belongs to the caller.
func (s *MongoCacheStore) Close() error {
	return nil
}

func (s *MongoCacheStore) EnsureIndexes(ctx context.Context) error {
	collection := s.db.Collection(db.CacheEntriesCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
