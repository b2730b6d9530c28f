package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/config"
	"github.com/projectwalnut/backend/content"
	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SiteConfigService struct {
	SiteConfig SiteConfigStore
	Users      UserStore
	Cfg        *config.Config
	Log        *slog.Logger
}

// Public returns the site configuration for unauthenticated rendering,
// creating the defaults document on first access.
func (s *SiteConfigService) Public(ctx context.Context) (*models.SiteConfig, error) {
	sc, err := s.SiteConfig.GetSiteConfig(ctx)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		sc = models.DefaultSiteConfig()
		if err := s.SiteConfig.CreateSiteConfig(ctx, sc); err != nil {
			return nil, err
		}
		s.Log.Info("site configuration initialized with defaults")
	}
	return sc, nil
}

// Get returns the full site configuration for the admin panel. Webmaster only.
func (s *SiteConfigService) Get(ctx context.Context, actingID primitive.ObjectID) (*models.SiteConfig, error) {
	if _, err := s.requireConfigManager(ctx, actingID, "view site config"); err != nil {
		return nil, err
	}
	return s.Public(ctx)
}

type SiteConfigInput struct {
	IsRegistrationEnabled   bool   `json:"isRegistrationEnabled"`
	IsCommentsEnabled       bool   `json:"isCommentsEnabled"`
	SiteName                string `json:"siteName"`
	SiteMetaDataKeywords    string `json:"siteMetaDataKeywords"`
	SiteMetaDataAuthor      string `json:"siteMetaDataAuthor"`
	SiteMetaDataDescription string `json:"siteMetaDataDescription"`
	GoogleAnalyticsScript   string `json:"googleAnalyticsScript"`
	InspectletScript        string `json:"inspectletScript"`
	SiteAdminEmail          string `json:"siteAdminEmail"`
	SiteDefaultThumbnailURI string `json:"siteDefaultThumbnailUri"`
	DefaultPaginationLimit  int    `json:"defaultPaginationLimit"`
	SearchLimit             int    `json:"searchLimit"`
	HomeWelcomeText         string `json:"homeWelcomeText"`
	HomeWelcomeSubText      string `json:"homeWelcomeSubText"`
	HomepageWelcomeImage    string `json:"homepageWelcomeImage"`
	CopyrightText           string `json:"copyrightText"`
	CloudflareSiteKey       string `json:"cloudflareSiteKey"`
	CloudflareServerKey     string `json:"cloudflareServerKey"`
}

// Update replaces the singleton site configuration. Webmaster only. Text
// fields are stripped of markup. Tracking scripts and URLs are optional, so
// they never fail the whole update: a script that does not match the known
// vendor snippet shapes is stored as empty, and invalid URLs fall back to
// the current or compiled-in defaults.
func (s *SiteConfigService) Update(ctx context.Context, actingID primitive.ObjectID, in SiteConfigInput) (*models.SiteConfig, error) {
	acting, err := s.requireConfigManager(ctx, actingID, "update site config")
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(in.SiteAdminEmail); email != "" && !content.ValidEmail(email) {
		return nil, apperr.Validation("siteAdminEmail", "site admin email is not a valid email address")
	}
	if in.DefaultPaginationLimit < 1 || in.DefaultPaginationLimit > 100 {
		return nil, apperr.Validation("defaultPaginationLimit", "pagination limit must be between 1 and 100")
	}
	if in.SearchLimit < 1 || in.SearchLimit > 50 {
		return nil, apperr.Validation("searchLimit", "search limit must be between 1 and 50")
	}
	gaScript := content.ValidTrackingScript(in.GoogleAnalyticsScript)
	if strings.TrimSpace(in.GoogleAnalyticsScript) != "" && gaScript == "" {
		s.Log.Warn("unrecognized analytics script rejected", "updatedBy", acting.Username)
	}
	inspScript := content.ValidTrackingScript(in.InspectletScript)
	if strings.TrimSpace(in.InspectletScript) != "" && inspScript == "" {
		s.Log.Warn("unrecognized inspectlet script rejected", "updatedBy", acting.Username)
	}

	current, err := s.Public(ctx)
	if err != nil {
		return nil, err
	}

	thumbnail := strings.TrimSpace(in.SiteDefaultThumbnailURI)
	if !content.ValidURI(thumbnail) {
		s.Log.Warn("invalid default thumbnail URL, falling back", "submitted", thumbnail)
		thumbnail = current.SiteDefaultThumbnailURI
		if !content.ValidURI(thumbnail) {
			thumbnail = s.Cfg.DefaultThumbnailURI
		}
	}
	welcomeImage := strings.TrimSpace(in.HomepageWelcomeImage)
	if welcomeImage != "" && !content.ValidURI(welcomeImage) {
		s.Log.Warn("invalid homepage welcome image URL, keeping current", "submitted", welcomeImage)
		welcomeImage = current.HomepageWelcomeImage
	}

	updated := &models.SiteConfig{
		IsRegistrationEnabled:   in.IsRegistrationEnabled,
		IsCommentsEnabled:       in.IsCommentsEnabled,
		SiteName:                content.SanitizePlainText(strings.TrimSpace(in.SiteName)),
		SiteMetaDataKeywords:    content.SanitizePlainText(strings.TrimSpace(in.SiteMetaDataKeywords)),
		SiteMetaDataAuthor:      content.SanitizePlainText(strings.TrimSpace(in.SiteMetaDataAuthor)),
		SiteMetaDataDescription: content.SanitizePlainText(strings.TrimSpace(in.SiteMetaDataDescription)),
		GoogleAnalyticsScript:   gaScript,
		InspectletScript:        inspScript,
		SiteAdminEmail:          strings.TrimSpace(in.SiteAdminEmail),
		SiteDefaultThumbnailURI: thumbnail,
		DefaultPaginationLimit:  in.DefaultPaginationLimit,
		SearchLimit:             in.SearchLimit,
		HomeWelcomeText:         content.SanitizePlainText(strings.TrimSpace(in.HomeWelcomeText)),
		HomeWelcomeSubText:      content.SanitizePlainText(strings.TrimSpace(in.HomeWelcomeSubText)),
		HomepageWelcomeImage:    welcomeImage,
		CopyrightText:           content.SanitizePlainText(strings.TrimSpace(in.CopyrightText)),
		CloudflareSiteKey:       strings.TrimSpace(in.CloudflareSiteKey),
		CloudflareServerKey:     strings.TrimSpace(in.CloudflareServerKey),
		LastModifiedBy:          acting.Username,
		LastModifiedDate:        time.Now(),
	}
	if updated.SiteName == "" {
		return nil, apperr.Validation("siteName", "site name is a required field")
	}

	if err := s.SiteConfig.ReplaceSiteConfig(ctx, updated); err != nil {
		return nil, err
	}
	s.Log.Info("site configuration updated", "updatedBy", acting.Username)
	return updated, nil
}

func (s *SiteConfigService) requireConfigManager(ctx context.Context, actingID primitive.ObjectID, action string) (*models.User, error) {
	acting, err := s.Users.UserByID(ctx, actingID)
	if err != nil {
		return nil, err
	}
	if acting == nil {
		return nil, apperr.ErrNotFound
	}
	if !acting.Privilege.CanManageSiteConfig() {
		s.Log.Warn("unauthorized site config access", "username", acting.Username, "action", action)
		return nil, apperr.ErrForbidden
	}
	return acting, nil
}
