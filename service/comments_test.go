package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCommentService(t *testing.T, commentsEnabled bool) (*CommentService, *fakeUserStore, *fakePostStore, *fakeCommentStore) {
	t.Helper()
	users := newFakeUserStore()
	posts := newFakePostStore()
	comments := newFakeCommentStore()
	sc := &fakeSiteConfigStore{}
	cfg := models.DefaultSiteConfig()
	cfg.IsCommentsEnabled = commentsEnabled
	require.NoError(t, sc.CreateSiteConfig(context.Background(), cfg))
	svc := &CommentService{
		Comments:   comments,
		Posts:      posts,
		Users:      users,
		SiteConfig: sc,
		Log:        discardLogger(),
	}
	return svc, users, posts, comments
}

func TestCommentAdd(t *testing.T) {
	svc, _, posts, comments := newCommentService(t, true)
	ctx := context.Background()

	postID, err := posts.InsertPost(ctx, &models.Post{Title: "a post", IsApproved: true, CreatedAt: time.Now()})
	require.NoError(t, err)

	id, err := svc.Add(ctx, postID, CommentInput{
		CommenterName: "  Jane <b>Doe</b>  ",
		CommentBody:   "Nice write-up!",
	})
	require.NoError(t, err)

	stored, err := comments.CommentByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Jane Doe", stored.CommenterName, "markup is stripped from the name")
	assert.Equal(t, "Nice write-up!", stored.CommentBody)
	assert.Equal(t, postID, stored.PostID)
	assert.False(t, stored.CommentTimestamp.IsZero())
}

func TestCommentAddRejections(t *testing.T) {
	svc, _, posts, comments := newCommentService(t, true)
	ctx := context.Background()
	postID, err := posts.InsertPost(ctx, &models.Post{Title: "a post", IsApproved: true})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   CommentInput
	}{
		{"name too short", CommentInput{CommenterName: "Jo", CommentBody: "hi"}},
		{"name too long", CommentInput{CommenterName: strings.Repeat("j", 51), CommentBody: "hi"}},
		{"empty body", CommentInput{CommenterName: "Jane", CommentBody: "   "}},
		{"body too long", CommentInput{CommenterName: "Jane", CommentBody: strings.Repeat("x", 501)}},
		{"markup-only name", CommentInput{CommenterName: "<b></b>", CommentBody: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, postID, tt.in)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	_, err = svc.Add(ctx, primitive.NewObjectID(), CommentInput{CommenterName: "Jane", CommentBody: "hi"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, _ := comments.CommentsByPost(ctx, postID)
	assert.Empty(t, list)
}

func TestCommentAddDisabled(t *testing.T) {
	svc, _, posts, _ := newCommentService(t, false)
	ctx := context.Background()
	postID, err := posts.InsertPost(ctx, &models.Post{Title: "a post", IsApproved: true})
	require.NoError(t, err)

	_, err = svc.Add(ctx, postID, CommentInput{CommenterName: "Jane", CommentBody: "hi"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCommentDelete(t *testing.T) {
	svc, users, posts, comments := newCommentService(t, true)
	ctx := context.Background()

	writerID := users.add(models.User{Username: "w", Privilege: models.PrivilegeWriter})
	modID := users.add(models.User{Username: "mo", Privilege: models.PrivilegeModerator})

	postID, err := posts.InsertPost(ctx, &models.Post{Title: "a post", IsApproved: true})
	require.NoError(t, err)
	commentID, err := svc.Add(ctx, postID, CommentInput{CommenterName: "Jane", CommentBody: "hi"})
	require.NoError(t, err)

	// Writers cannot moderate comments.
	err = svc.Delete(ctx, writerID, commentID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, modID, commentID))
	gone, _ := comments.CommentByID(ctx, commentID)
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.Delete(ctx, modID, commentID), apperr.ErrNotFound)
}

func TestCommentListForPost(t *testing.T) {
	svc, _, posts, _ := newCommentService(t, true)
	ctx := context.Background()

	postID, err := posts.InsertPost(ctx, &models.Post{Title: "a post", IsApproved: true})
	require.NoError(t, err)
	otherID, err := posts.InsertPost(ctx, &models.Post{Title: "another", IsApproved: true})
	require.NoError(t, err)

	for _, body := range []string{"first", "second"} {
		_, err := svc.Add(ctx, postID, CommentInput{CommenterName: "Jane", CommentBody: body})
		require.NoError(t, err)
	}
	_, err = svc.Add(ctx, otherID, CommentInput{CommenterName: "Jane", CommentBody: "elsewhere"})
	require.NoError(t, err)

	list, err := svc.ListForPost(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, c := range list {
		assert.Equal(t, postID, c.PostID)
	}
}
