package store

import (
	"context"

	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error) {
	res, err := db.Comments().InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) CommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := db.Comments().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Comments().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (db *DB) CommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := db.Comments().Find(ctx,
		bson.M{"postId": postID},
		options.Find().SetSort(bson.M{"commentTimestamp": -1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
