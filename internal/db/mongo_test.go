package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/settings"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MockCollection is a mock implementation of SettingsCollection
type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, replacement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.UpdateResult), args.Error(1)
}

func (m *MockCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.DeleteResult), args.Error(1)
}

func TestConnectMongo_BadURI(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "mongodb://bad:uri")
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestMongoSettingsStorage_NilCollection(t *testing.T) {
	storage := &MongoSettingsStorage{}
	ctx := context.Background()

	_, err := storage.Get(ctx, settings.StorageKey)
	assert.Error(t, err)
	assert.Error(t, storage.Put(ctx, settings.StorageKey, []byte(`{}`)))
	assert.Error(t, storage.Delete(ctx, settings.StorageKey))
}

func TestMongoSettingsStorage_Get(t *testing.T) {
	ctx := context.Background()
	filter := bson.M{"_id": settings.StorageKey}

	t.Run("missing document", func(t *testing.T) {
		coll := new(MockCollection)
		coll.On("FindOne", ctx, filter).
			Return(mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil))

		_, err := (&MongoSettingsStorage{Collection: coll}).Get(ctx, settings.StorageKey)
		assert.ErrorIs(t, err, settings.ErrNoValue)
		coll.AssertExpectations(t)
	})

	t.Run("stored blob", func(t *testing.T) {
		coll := new(MockCollection)
		doc := bson.M{"_id": settings.StorageKey, "value": `{"theme":"dark"}`}
		coll.On("FindOne", ctx, filter).
			Return(mongo.NewSingleResultFromDocument(doc, nil, nil))

		got, err := (&MongoSettingsStorage{Collection: coll}).Get(ctx, settings.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, `{"theme":"dark"}`, string(got))
	})
}

func TestMongoSettingsStorage_Put(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollection)
	coll.On("ReplaceOne", ctx, bson.M{"_id": "k"}, mock.MatchedBy(func(doc settingsDocument) bool {
		return doc.Key == "k" && doc.Value == `{"a":1}` && !doc.UpdatedAt.IsZero()
	})).Return(&mongo.UpdateResult{UpsertedCount: 1}, nil).Once()
	coll.On("ReplaceOne", ctx, bson.M{"_id": "k"}, mock.Anything).
		Return(nil, errors.New("not primary"))

	storage := &MongoSettingsStorage{Collection: coll}
	assert.NoError(t, storage.Put(ctx, "k", []byte(`{"a":1}`)))
	assert.Error(t, storage.Put(ctx, "k", []byte(`{"a":2}`)))
	coll.AssertExpectations(t)
}

func TestMongoSettingsStorage_Delete(t *testing.T) {
	ctx := context.Background()
	coll := new(MockCollection)
	coll.On("DeleteOne", ctx, bson.M{"_id": "k"}).Return(&mongo.DeleteResult{DeletedCount: 0}, nil)

	assert.NoError(t, (&MongoSettingsStorage{Collection: coll}).Delete(ctx, "k"))
	coll.AssertExpectations(t)
}

// Integration test (requires running MongoDB)
func TestMongoSettingsStorage_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	coll := client.Database("test_fleet").Collection(SettingsCollectionName)
	_ = coll.Drop(ctx)
	storage := &MongoSettingsStorage{Collection: coll}

	svc := settings.NewService(storage)
	_, err = svc.Update(ctx, []byte(`{"theme":"dark"}`))
	require.NoError(t, err)

	loaded, err := settings.NewService(storage).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Theme)

	_, err = svc.Reset(ctx)
	require.NoError(t, err)
	_, err = storage.Get(ctx, settings.StorageKey)
	assert.ErrorIs(t, err, settings.ErrNoValue)
}
