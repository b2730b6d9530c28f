package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID           primitive.ObjectID `bson:"postId" json:"postId"`
	CommenterName    string             `bson:"commenterName" json:"commenterName"`
	CommentBody      string             `bson:"commentBody" json:"commentBody"`
	CommentTimestamp time.Time          `bson:"commentTimestamp" json:"commentTimestamp"`
}
