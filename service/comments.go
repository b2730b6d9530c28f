package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/content"
	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	minCommenterName = 3
	maxCommenterName = 50
	maxCommentBody   = 500
)

type CommentService struct {
	Comments   CommentStore
	Posts      PostStore
	Users      UserStore
	SiteConfig SiteConfigStore
	Log        *slog.Logger
}

type CommentInput struct {
	CommenterName string `json:"commenterName"`
	CommentBody   string `json:"commentBody"`
}

// Add records an anonymous comment on a post. Commenting must be enabled
// site-wide and the target post must exist.
func (s *CommentService) Add(ctx context.Context, postID primitive.ObjectID, in CommentInput) (primitive.ObjectID, error) {
	sc, err := s.SiteConfig.GetSiteConfig(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if sc == nil || !sc.IsCommentsEnabled {
		s.Log.Warn("comment rejected, commenting is disabled", "postId", postID.Hex())
		return primitive.NilObjectID, apperr.ErrForbidden
	}

	name := content.SanitizePlainText(strings.TrimSpace(in.CommenterName))
	body := content.SanitizePlainText(strings.TrimSpace(in.CommentBody))
	if len(name) < minCommenterName || len(name) > maxCommenterName {
		return primitive.NilObjectID, apperr.Validation("commenterName", "commenter name must be between 3 and 50 characters")
	}
	if len(body) < 1 || len(body) > maxCommentBody {
		return primitive.NilObjectID, apperr.Validation("commentBody", "comment must be between 1 and 500 characters")
	}

	post, err := s.Posts.PostByID(ctx, postID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if post == nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}

	id, err := s.Comments.InsertComment(ctx, &models.Comment{
		PostID:           postID,
		CommenterName:    name,
		CommentBody:      body,
		CommentTimestamp: time.Now(),
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.Log.Info("comment added", "postId", postID.Hex(), "commenter", name)
	return id, nil
}

// Delete removes a comment. Moderator or webmaster only.
func (s *CommentService) Delete(ctx context.Context, actingID, commentID primitive.ObjectID) error {
	acting, err := s.Users.UserByID(ctx, actingID)
	if err != nil {
		return err
	}
	if acting == nil {
		return apperr.ErrNotFound
	}
	if !acting.Privilege.CanModerateComments() {
		s.Log.Warn("unauthorized comment deletion attempt", "username", acting.Username)
		return apperr.ErrForbidden
	}
	comment, err := s.Comments.CommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperr.ErrNotFound
	}
	if err := s.Comments.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	s.Log.Info("comment deleted", "commentId", commentID.Hex(), "deletedBy", acting.Username)
	return nil
}

// ListForPost returns a post's comments, newest first.
func (s *CommentService) ListForPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return s.Comments.CommentsByPost(ctx, postID)
}
