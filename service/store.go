// Package service implements the privilege-gated admin workflows: post
// lifecycle, user administration, comments and site configuration.
package service

import (
	"context"

	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The store interfaces describe exactly the document operations each service
// needs. *store.DB satisfies all of them; tests substitute in-memory fakes.
// Lookup methods return (nil, nil) when the document does not exist.

type UserStore interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	ListUsersExcept(ctx context.Context, id primitive.ObjectID) ([]models.User, error)
}

type PostStore interface {
	InsertPost(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	UpdatePost(ctx context.Context, id primitive.ObjectID, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	PostsByAuthor(ctx context.Context, username string) ([]models.Post, error)
	AllPosts(ctx context.Context) ([]models.Post, error)
	ApprovedPosts(ctx context.Context, page, perPage int) ([]models.Post, error)
	CountApproved(ctx context.Context) (int64, error)
	SearchApproved(ctx context.Context, term string, limit int) ([]models.Post, error)
}

type CommentStore interface {
	InsertComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error)
	CommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	CommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
}

type SiteConfigStore interface {
	GetSiteConfig(ctx context.Context) (*models.SiteConfig, error)
	CreateSiteConfig(ctx context.Context, cfg *models.SiteConfig) error
	ReplaceSiteConfig(ctx context.Context, cfg *models.SiteConfig) error
}
