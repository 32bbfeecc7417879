package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sardine/pkg/errors"
)

const (
	// DefaultDatabase is the database used when the URI names none.
	DefaultDatabase = "sardine"
	// Collection holds the lot records.
	Collection = "lots"
)

// MongoStore keeps records in MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses the lots collection of database.
// An empty database selects [DefaultDatabase].
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	if database == "" {
		database = DefaultDatabase
	}
	s := &MongoStore{client: client, coll: client.Database(database).Collection(Collection)}

	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

// Save inserts rec under a new ID.
func (s *MongoStore) Save(ctx context.Context, rec *Record) (*Record, error) {
	out := stamp(rec)
	if _, err := s.coll.InsertOne(ctx, out); err != nil {
		return nil, fmt.Errorf("MongoStore.Save: %w", err)
	}
	return out, nil
}

// Get finds the record with id.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var rec Record
	err = s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("MongoStore.Get: %w", err)
	}
	return &rec, nil
}

// List returns records newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"lot": 0})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("MongoStore.List: %w", err)
	}
	defer cur.Close(ctx)

	recs := []Record{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("MongoStore.List (decoding): %w", err)
	}
	return recs, nil
}

// Delete removes the record with id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	id, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("MongoStore.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
