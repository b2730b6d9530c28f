package store

import (
	"context"

	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertPost(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	res, err := db.Posts().InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := db.Posts().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost replaces the stored document with post; concurrent edits are
// last-write-wins, there is no optimistic concurrency token.
func (db *DB) UpdatePost(ctx context.Context, id primitive.ObjectID, post *models.Post) error {
	post.ID = id
	_, err := db.Posts().ReplaceOne(ctx, bson.M{"_id": id}, post)
	return err
}

func (db *DB) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Posts().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (db *DB) PostsByAuthor(ctx context.Context, username string) ([]models.Post, error) {
	return db.findPosts(ctx, bson.M{"author": username})
}

func (db *DB) AllPosts(ctx context.Context) ([]models.Post, error) {
	return db.findPosts(ctx, bson.M{})
}

func (db *DB) findPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cur, err := db.Posts().Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ApprovedPosts returns one page of publicly visible posts, newest first.
// page is 1-based.
func (db *DB) ApprovedPosts(ctx context.Context, page, perPage int) ([]models.Post, error) {
	cur, err := db.Posts().Find(ctx,
		bson.M{"isApproved": true},
		options.Find().
			SetSort(bson.M{"createdAt": -1}).
			SetSkip(int64(perPage*page-perPage)).
			SetLimit(int64(perPage)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (db *DB) CountApproved(ctx context.Context) (int64, error) {
	return db.Posts().CountDocuments(ctx, bson.M{"isApproved": true})
}

// SearchApproved runs a full-text search over approved posts, ranked by
// text relevance descending. term must already be scrubbed by the caller.
func (db *DB) SearchApproved(ctx context.Context, term string, limit int) ([]models.Post, error) {
	filter := bson.M{
		"$and": bson.A{
			bson.M{"$text": bson.M{"$search": term}},
			bson.M{"isApproved": true},
		},
	}
	cur, err := db.Posts().Find(ctx, filter,
		options.Find().
			SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
