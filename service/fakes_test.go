package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/projectwalnut/backend/config"
	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the mongo-backed store, mirroring its contract:
// lookups return (nil, nil) when absent, list methods sort newest first.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUserStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	user.ID = id
	f.users[id] = *user
	return id, nil
}

func (f *fakeUserStore) SaveUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) ListUsersExcept(_ context.Context, id primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Privilege > out[j].Privilege })
	return out, nil
}

func (f *fakeUserStore) add(u models.User) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = u
	return u.ID
}

type fakePostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]models.Post{}}
}

func (f *fakePostStore) InsertPost(_ context.Context, post *models.Post) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	post.ID = id
	f.posts[id] = *post
	return id, nil
}

func (f *fakePostStore) PostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakePostStore) UpdatePost(_ context.Context, id primitive.ObjectID, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = id
	f.posts[id] = *post
	return nil
}

func (f *fakePostStore) DeletePost(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) PostsByAuthor(_ context.Context, username string) ([]models.Post, error) {
	return f.filter(func(p models.Post) bool { return p.Author == username }), nil
}

func (f *fakePostStore) AllPosts(_ context.Context) ([]models.Post, error) {
	return f.filter(func(models.Post) bool { return true }), nil
}

func (f *fakePostStore) ApprovedPosts(_ context.Context, page, perPage int) ([]models.Post, error) {
	approved := f.filter(func(p models.Post) bool { return p.IsApproved })
	start := (page - 1) * perPage
	if start >= len(approved) {
		return nil, nil
	}
	end := start + perPage
	if end > len(approved) {
		end = len(approved)
	}
	return approved[start:end], nil
}

func (f *fakePostStore) CountApproved(_ context.Context) (int64, error) {
	return int64(len(f.filter(func(p models.Post) bool { return p.IsApproved }))), nil
}

func (f *fakePostStore) SearchApproved(_ context.Context, term string, limit int) ([]models.Post, error) {
	matches := f.filter(func(p models.Post) bool {
		return p.IsApproved && strings.Contains(strings.ToLower(p.Title), strings.ToLower(term))
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (f *fakePostStore) filter(keep func(models.Post) bool) []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[primitive.ObjectID]models.Comment{}}
}

func (f *fakeCommentStore) InsertComment(_ context.Context, c *models.Comment) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	c.ID = id
	f.comments[id] = *c
	return id, nil
}

func (f *fakeCommentStore) CommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.comments[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCommentStore) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentStore) CommentsByPost(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommentTimestamp.After(out[j].CommentTimestamp) })
	return out, nil
}

type fakeSiteConfigStore struct {
	mu  sync.Mutex
	cfg *models.SiteConfig
}

func (f *fakeSiteConfigStore) GetSiteConfig(_ context.Context) (*models.SiteConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cfg == nil {
		return nil, nil
	}
	c := *f.cfg
	return &c, nil
}

func (f *fakeSiteConfigStore) CreateSiteConfig(_ context.Context, cfg *models.SiteConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *cfg
	f.cfg = &c
	return nil
}

func (f *fakeSiteConfigStore) ReplaceSiteConfig(_ context.Context, cfg *models.SiteConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *cfg
	f.cfg = &c
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		TokenTTL:             time.Hour,
		MaxTitleLength:       50,
		MaxDescriptionLength: 1000,
		MaxBodyLength:        100000,
		DefaultThumbnailURI:  "https://cdn.example.com/default-thumb.png",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
