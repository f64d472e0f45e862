package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/settings"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsCollectionName is the collection holding settings documents.
const SettingsCollectionName = "settings"

// settingsDocument stores one blob per key, keyed by _id.
type settingsDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSettingsStorage implements settings.Storage on a MongoDB collection.
type MongoSettingsStorage struct {
	Collection SettingsCollection
}

var _ settings.Storage = (*MongoSettingsStorage)(nil)

// Get returns the blob saved under key.
func (s *MongoSettingsStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var doc settingsDocument
	err := s.Collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, settings.ErrNoValue
	}
	if err != nil {
		return nil, fmt.Errorf("find settings %q: %w", key, err)
	}
	return []byte(doc.Value), nil
}

// Put upserts the blob under key.
func (s *MongoSettingsStorage) Put(ctx context.Context, key string, value []byte) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	doc := settingsDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save settings %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob under key. Deleting a missing key is not an error.
func (s *MongoSettingsStorage) Delete(ctx context.Context, key string) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if _, err := s.Collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete settings %q: %w", key, err)
	}
	return nil
}
