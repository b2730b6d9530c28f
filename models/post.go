package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title"`
	Desc  string             `bson:"desc" json:"desc"`
	// MarkdownBody is the source of truth; Body is the sanitized HTML derived
	// from it on every write and is never edited directly.
	MarkdownBody      string    `bson:"markdownbody" json:"markdownBody"`
	Body              string    `bson:"body" json:"body"`
	Author            string    `bson:"author" json:"author"`
	LastUpdateAuthor  string    `bson:"lastUpdateAuthor" json:"lastUpdateAuthor"`
	Tags              []string  `bson:"tags" json:"tags"`
	ThumbnailImageURI string    `bson:"thumbnailImageURI" json:"thumbnailImageURI"`
	IsApproved        bool      `bson:"isApproved" json:"isApproved"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	ModifiedAt        time.Time `bson:"modifiedAt" json:"modifiedAt"`
}
