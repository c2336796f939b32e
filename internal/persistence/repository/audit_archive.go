package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/persistence/db"
)

type mongoAuditArchive struct {
	db *mongo.Database
}

// NewMongoAuditArchive persists audit records outside the in-memory store,
// so a disaster's trail survives its deletion.
func NewMongoAuditArchive(db *mongo.Database) domain.AuditArchive {
	return &mongoAuditArchive{
		db: db,
	}
}

func (a *mongoAuditArchive) Append(ctx context.Context, rec *domain.AuditRecord) error {
	collection := a.db.Collection(db.AuditRecordsCollection)

	_, err := collection.InsertOne(ctx, rec)
	return err
}

func (a *mongoAuditArchive) GetByDisasterID(ctx context.Context, disasterID string, limit int) ([]domain.AuditRecord, error) {
	collection := a.db.Collection(db.AuditRecordsCollection)

	filter := bson.M{"disaster_id": disasterID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.AuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *mongoAuditArchive) DeleteOlderThan(ctx context.Context, before time.Time) error {
	collection := a.db.Collection(db.AuditRecordsCollection)

	filter := bson.M{
		"timestamp": bson.M{
			"$lt": before,
		},
	}

	_, err := collection.DeleteMany(ctx, filter)
	return err
}

func (a *mongoAuditArchive) EnsureIndexes(ctx context.Context) error {
	collection := a.db.Collection(db.AuditRecordsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "disaster_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "action", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7776000), // 90 days TTL
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
