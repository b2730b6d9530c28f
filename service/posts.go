package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/config"
	"github.com/projectwalnut/backend/content"
	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var searchScrub = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

type PostService struct {
	Posts      PostStore
	Users      UserStore
	SiteConfig SiteConfigStore
	Cfg        *config.Config
	Log        *slog.Logger
}

// PostInput is the typed request body for create and update. IsApproved is
// only honoured on update, and only for editors who may approve posts.
type PostInput struct {
	Title             string `json:"title"`
	Desc              string `json:"desc"`
	MarkdownBody      string `json:"markdownBody"`
	Tags              string `json:"tags"`
	ThumbnailImageURI string `json:"thumbnailImageURI"`
	IsApproved        bool   `json:"isApproved"`
}

// Create validates fields, renders the markdown and persists a new,
// unapproved post authored by the acting user.
func (s *PostService) Create(ctx context.Context, authorID primitive.ObjectID, in PostInput) (primitive.ObjectID, error) {
	author, err := s.Users.UserByID(ctx, authorID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if author == nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}

	if err := s.validateInput(&in); err != nil {
		return primitive.NilObjectID, err
	}
	html, err := content.Render(in.MarkdownBody)
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now()
	post := &models.Post{
		Title:             in.Title,
		Desc:              in.Desc,
		MarkdownBody:      in.MarkdownBody,
		Body:              html,
		Author:            author.Username,
		LastUpdateAuthor:  author.Username,
		Tags:              content.ParseTags(in.Tags),
		ThumbnailImageURI: s.resolveThumbnail(ctx, in.ThumbnailImageURI),
		IsApproved:        false,
		CreatedAt:         now,
		ModifiedAt:        now,
	}
	id, err := s.Posts.InsertPost(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.Log.Info("post created", "id", id.Hex(), "author", author.Username)
	return id, nil
}

// Update re-validates every field and always re-renders the HTML from the
// submitted markdown. The isApproved flag from the input is applied only
// when the editor holds the approve capability; otherwise the stored value
// is left untouched. There is no author-ownership check: any authenticated
// user may edit any post.
func (s *PostService) Update(ctx context.Context, postID, editorID primitive.ObjectID, in PostInput) error {
	editor, err := s.Users.UserByID(ctx, editorID)
	if err != nil {
		return err
	}
	if editor == nil {
		return apperr.ErrNotFound
	}
	post, err := s.Posts.PostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperr.ErrNotFound
	}

	if err := s.validateInput(&in); err != nil {
		return err
	}
	html, err := content.Render(in.MarkdownBody)
	if err != nil {
		return err
	}

	post.Title = in.Title
	post.Desc = in.Desc
	post.MarkdownBody = in.MarkdownBody
	post.Body = html
	post.Tags = content.ParseTags(in.Tags)
	post.ThumbnailImageURI = s.resolveThumbnail(ctx, in.ThumbnailImageURI)
	post.LastUpdateAuthor = editor.Username
	post.ModifiedAt = time.Now()
	if editor.Privilege.CanApprovePosts() {
		post.IsApproved = in.IsApproved
	}

	if err := s.Posts.UpdatePost(ctx, postID, post); err != nil {
		return err
	}
	s.Log.Info("post updated", "id", postID.Hex(), "editor", editor.Username)
	return nil
}

// Delete removes a post. Like Update it carries no ownership check: any
// authenticated user may delete any post.
func (s *PostService) Delete(ctx context.Context, postID, actingID primitive.ObjectID) error {
	acting, err := s.Users.UserByID(ctx, actingID)
	if err != nil {
		return err
	}
	if acting == nil {
		return apperr.ErrNotFound
	}
	post, err := s.Posts.PostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperr.ErrNotFound
	}
	if err := s.Posts.DeletePost(ctx, postID); err != nil {
		return err
	}
	s.Log.Info("post deleted", "id", postID.Hex(), "title", post.Title, "requestedBy", acting.Username)
	return nil
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.Posts.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.ErrNotFound
	}
	return post, nil
}

// ListVisibleFor returns the dashboard view: writers see their own posts,
// moderators and webmasters see everything, newest first. An unknown
// privilege value is an authorization failure.
func (s *PostService) ListVisibleFor(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	user, err := s.Users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	switch {
	case user.Privilege == models.PrivilegeWriter:
		return s.Posts.PostsByAuthor(ctx, user.Username)
	case user.Privilege.CanViewAllPosts():
		return s.Posts.AllPosts(ctx)
	default:
		s.Log.Warn("dashboard access with invalid privilege level", "user", user.Username, "privilege", int(user.Privilege))
		return nil, apperr.ErrForbidden
	}
}

// ListPublic returns one page of approved posts and whether another page
// exists. page is 1-based; values below 1 are clamped.
func (s *PostService) ListPublic(ctx context.Context, page int) ([]models.Post, bool, error) {
	if page < 1 {
		page = 1
	}
	perPage := 10
	if sc, err := s.SiteConfig.GetSiteConfig(ctx); err == nil && sc != nil && sc.DefaultPaginationLimit > 0 {
		perPage = sc.DefaultPaginationLimit
	}
	posts, err := s.Posts.ApprovedPosts(ctx, page, perPage)
	if err != nil {
		return nil, false, err
	}
	count, err := s.Posts.CountApproved(ctx)
	if err != nil {
		return nil, false, err
	}
	hasNext := int64(page*perPage) < count
	return posts, hasNext, nil
}

// Search scrubs the term and runs a relevance-ranked full-text search over
// approved posts.
func (s *PostService) Search(ctx context.Context, term string) ([]models.Post, error) {
	term = strings.TrimSpace(term)
	term = strings.NewReplacer("<", "", ">", "").Replace(term)
	if term == "" {
		return nil, apperr.Validation("searchTerm", "search term cannot be empty")
	}
	if len(term) > 100 {
		return nil, apperr.Validation("searchTerm", "search term is too long")
	}
	scrubbed := searchScrub.ReplaceAllString(term, "")
	if strings.TrimSpace(scrubbed) == "" {
		return nil, apperr.Validation("searchTerm", "search term cannot be empty")
	}

	limit := 10
	if sc, err := s.SiteConfig.GetSiteConfig(ctx); err == nil && sc != nil && sc.SearchLimit > 0 {
		limit = sc.SearchLimit
	}
	return s.Posts.SearchApproved(ctx, scrubbed, limit)
}

func (s *PostService) validateInput(in *PostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Desc = strings.TrimSpace(in.Desc)
	in.MarkdownBody = strings.TrimSpace(in.MarkdownBody)
	in.Tags = strings.TrimSpace(in.Tags)
	in.ThumbnailImageURI = strings.TrimSpace(in.ThumbnailImageURI)

	switch {
	case in.Title == "":
		return apperr.Validation("title", "title, body, and description are required")
	case in.MarkdownBody == "":
		return apperr.Validation("markdownBody", "title, body, and description are required")
	case in.Desc == "":
		return apperr.Validation("desc", "title, body, and description are required")
	}
	if len(in.Title) > s.Cfg.MaxTitleLength {
		return apperr.Validation("title", "title must not exceed its length limit")
	}
	if len(in.Desc) > s.Cfg.MaxDescriptionLength {
		return apperr.Validation("desc", "description must not exceed its length limit")
	}
	if len(in.MarkdownBody) > s.Cfg.MaxBodyLength {
		return apperr.Validation("markdownBody", "body must not exceed its length limit")
	}
	return nil
}

// resolveThumbnail applies the fallback chain: a valid request URI wins,
// then the site config default, then the process-wide default.
func (s *PostService) resolveThumbnail(ctx context.Context, requested string) string {
	if content.ValidURI(requested) {
		return requested
	}
	if sc, err := s.SiteConfig.GetSiteConfig(ctx); err == nil && sc != nil && sc.SiteDefaultThumbnailURI != "" {
		return sc.SiteDefaultThumbnailURI
	}
	return s.Cfg.DefaultThumbnailURI
}
