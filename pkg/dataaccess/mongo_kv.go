package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "kv"

type mongoRecord struct {
	Namespace Namespace `bson:"namespace"`
	GuildID   string    `bson:"guild_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoKV struct {
	// client is the Mongo connection pool.
	client *mongo.Client

	// database is the database the records are stored in.
	database string
}

// NewMongoKV creates a KV backed by a single Mongo collection. The JSON record is stored as a string so the
// layout is identical across backends.
func NewMongoKV(ctx context.Context, client *mongo.Client, database string) (KV, error) {
	if client == nil {
		return nil, errors.New("mongo client is nil")
	}

	k := &mongoKV{
		client:   client,
		database: database,
	}

	_, err := k.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "namespace", Value: 1}, {Key: "guild_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating kv index: %w", err)
	}
	return k, nil
}

func (m *mongoKV) collection() *mongo.Collection {
	return m.client.Database(m.database).Collection(mongoCollection)
}

func (m *mongoKV) Get(ctx context.Context, ns Namespace, guildID string) ([]byte, error) {
	defer observe(BackendMongo, "get", ns)()

	rec := new(mongoRecord)
	err := m.collection().FindOne(ctx, bson.M{"namespace": ns, "guild_id": guildID}).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting record: %w", err)
	}
	return []byte(rec.Data), nil
}

func (m *mongoKV) Put(ctx context.Context, ns Namespace, guildID string, data []byte) error {
	defer observe(BackendMongo, "put", ns)()

	rec := &mongoRecord{
		Namespace: ns,
		GuildID:   guildID,
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := m.collection().UpdateOne(ctx, bson.M{"namespace": ns, "guild_id": guildID}, bson.M{"$set": rec}, opts)
	if err != nil {
		return fmt.Errorf("error updating record: %w", err)
	}
	return nil
}

func (m *mongoKV) Delete(ctx context.Context, ns Namespace, guildID string) error {
	defer observe(BackendMongo, "delete", ns)()

	if _, err := m.collection().DeleteOne(ctx, bson.M{"namespace": ns, "guild_id": guildID}); err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}
	return nil
}

func (m *mongoKV) Ping(ctx context.Context) error {
	defer observe(BackendMongo, "ping", "-")()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}

func (m *mongoKV) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
