package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	NearbyPosts(ctx context.Context, q NearbyQuery) ([]*NearbyPost, error)
}

func (mdb *MongodbRepo) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	post.BeforeCreate()

	if _, err := col.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("error inserting post: %v", err)
	}

	return post, nil
}

// NearbyPosts runs the proximity search over listings. Unlike the user
// search there is no role restriction.
func (mdb *MongodbRepo) NearbyPosts(ctx context.Context, q NearbyQuery) ([]*NearbyPost, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := BuildGeoNearPipeline(q, nil, bson.D{
		{Key: "_id", Value: 1},
		{Key: "user_id", Value: 1},
		{Key: "user_name", Value: 1},
		{Key: "user_phone", Value: 1},
		{Key: "user_email", Value: 1},
		{Key: "user_picture", Value: 1},
		{Key: "user_address", Value: 1},
		{Key: "title", Value: 1},
		{Key: "description", Value: 1},
		{Key: "main_picture", Value: 1},
		{Key: "qty", Value: 1},
		{Key: "price", Value: 1},
		{Key: "dist", Value: bson.D{{Key: "calculated", Value: 1}}},
	})

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error running nearby post query: %v", err)
	}
	defer cursor.Close(ctx)

	posts := []*NearbyPost{}
	for cursor.Next(ctx) {
		var p NearbyPost
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("error decoding nearby post: %v", err)
		}
		posts = append(posts, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return posts, nil
}
