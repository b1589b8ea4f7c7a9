package connect

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FilesBucketName is the GridFS bucket uploaded pictures live in.
const FilesBucketName = "box"

func MongoDBConnect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	return client, nil
}

func MongoDBDisconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %v", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the store depends on: a unique index on
// the normalized email and 2dsphere indexes backing the proximity searches.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "loc", Value: "2dsphere"}},
			Options: options.Index().SetName("loc_2dsphere"),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("error creating user indexes: %v", err)
	}

	postIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "loc", Value: "2dsphere"}},
			Options: options.Index().SetName("loc_2dsphere"),
		},
	}
	if _, err := db.Collection("posts").Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("error creating post indexes: %v", err)
	}

	return nil
}

// NewFilesBucket opens the GridFS bucket used by the file endpoints.
func NewFilesBucket(client *mongo.Client, dbName string) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(
		client.Database(dbName),
		options.GridFSBucket().SetName(FilesBucketName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open files bucket: %v", err)
	}
	return bucket, nil
}
