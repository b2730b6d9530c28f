package service

import (
	"context"
	"testing"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gtagSnippet = `<script async src="https://www.googletagmanager.com/gtag/js?id=G-ABC123"></script>
<script>
  window.dataLayer = window.dataLayer || [];
  function gtag(){dataLayer.push(arguments);}
  gtag('js', new Date());
  gtag('config', 'G-ABC123');
</script>`

func newSiteConfigService(users *fakeUserStore, sc *fakeSiteConfigStore) *SiteConfigService {
	return &SiteConfigService{
		SiteConfig: sc,
		Users:      users,
		Cfg:        testConfig(),
		Log:        discardLogger(),
	}
}

func validSiteConfigInput() SiteConfigInput {
	return SiteConfigInput{
		IsRegistrationEnabled:   true,
		IsCommentsEnabled:       true,
		SiteName:                "My Blog",
		SiteMetaDataKeywords:    "blog, writing",
		SiteMetaDataAuthor:      "Root",
		SiteMetaDataDescription: "A blog about things",
		SiteAdminEmail:          "admin@example.com",
		SiteDefaultThumbnailURI: "https://cdn.example.com/thumb.png",
		DefaultPaginationLimit:  10,
		SearchLimit:             10,
		HomeWelcomeText:         "Welcome",
		CopyrightText:           "© 2026",
	}
}

func TestSiteConfigPublicLazyCreate(t *testing.T) {
	sc := &fakeSiteConfigStore{}
	svc := newSiteConfigService(newFakeUserStore(), sc)

	cfg, err := svc.Public(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "Blog-Site", cfg.SiteName)
	assert.True(t, cfg.IsRegistrationEnabled)
	assert.False(t, cfg.IsCommentsEnabled)

	stored, err := sc.GetSiteConfig(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stored, "defaults are persisted on first access")
}

func TestSiteConfigGetRequiresWebmaster(t *testing.T) {
	users := newFakeUserStore()
	svc := newSiteConfigService(users, &fakeSiteConfigStore{})

	wmID := users.add(models.User{Username: "root", Privilege: models.PrivilegeWebmaster})
	modID := users.add(models.User{Username: "mo", Privilege: models.PrivilegeModerator})

	_, err := svc.Get(context.Background(), wmID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), modID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestSiteConfigUpdate(t *testing.T) {
	users := newFakeUserStore()
	sc := &fakeSiteConfigStore{}
	svc := newSiteConfigService(users, sc)
	wmID := users.add(models.User{Username: "root", Privilege: models.PrivilegeWebmaster})

	in := validSiteConfigInput()
	in.SiteName = "My <em>Blog</em>"
	in.GoogleAnalyticsScript = gtagSnippet

	updated, err := svc.Update(context.Background(), wmID, in)
	require.NoError(t, err)
	assert.Equal(t, "My Blog", updated.SiteName, "markup is stripped from text fields")
	assert.Equal(t, "blog, writing", updated.SiteMetaDataKeywords)
	assert.Equal(t, "Root", updated.SiteMetaDataAuthor)
	assert.Equal(t, "A blog about things", updated.SiteMetaDataDescription)
	assert.Equal(t, gtagSnippet, updated.GoogleAnalyticsScript)
	assert.Equal(t, "root", updated.LastModifiedBy)
	assert.False(t, updated.LastModifiedDate.IsZero())

	stored, err := sc.GetSiteConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My Blog", stored.SiteName)
}

func TestSiteConfigUpdateDropsUnrecognizedScripts(t *testing.T) {
	users := newFakeUserStore()
	sc := &fakeSiteConfigStore{}
	svc := newSiteConfigService(users, sc)
	wmID := users.add(models.User{Username: "root", Privilege: models.PrivilegeWebmaster})

	// Scripts are optional: ones that don't match the known vendor shapes
	// are stored as empty instead of failing the update.
	in := validSiteConfigInput()
	in.GoogleAnalyticsScript = `<script>alert(1)</script>`
	in.InspectletScript = `<script src="https://evil.example.com/x.js"></script>`

	updated, err := svc.Update(context.Background(), wmID, in)
	require.NoError(t, err)
	assert.Empty(t, updated.GoogleAnalyticsScript)
	assert.Empty(t, updated.InspectletScript)

	stored, err := sc.GetSiteConfig(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored.GoogleAnalyticsScript)
	assert.Empty(t, stored.InspectletScript)
}

func TestSiteConfigUpdateRejections(t *testing.T) {
	users := newFakeUserStore()
	svc := newSiteConfigService(users, &fakeSiteConfigStore{})
	wmID := users.add(models.User{Username: "root", Privilege: models.PrivilegeWebmaster})
	writerID := users.add(models.User{Username: "w", Privilege: models.PrivilegeWriter})

	_, err := svc.Update(context.Background(), writerID, validSiteConfigInput())
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	tests := []struct {
		name   string
		mutate func(*SiteConfigInput)
	}{
		{"bad email", func(in *SiteConfigInput) { in.SiteAdminEmail = "not-an-email" }},
		{"pagination too low", func(in *SiteConfigInput) { in.DefaultPaginationLimit = 0 }},
		{"pagination too high", func(in *SiteConfigInput) { in.DefaultPaginationLimit = 500 }},
		{"search limit too high", func(in *SiteConfigInput) { in.SearchLimit = 99 }},
		{"empty site name", func(in *SiteConfigInput) { in.SiteName = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSiteConfigInput()
			tt.mutate(&in)
			_, err := svc.Update(context.Background(), wmID, in)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestSiteConfigUpdateThumbnailFallback(t *testing.T) {
	users := newFakeUserStore()
	sc := &fakeSiteConfigStore{}
	svc := newSiteConfigService(users, sc)
	wmID := users.add(models.User{Username: "root", Privilege: models.PrivilegeWebmaster})

	// First update establishes a good thumbnail.
	in := validSiteConfigInput()
	_, err := svc.Update(context.Background(), wmID, in)
	require.NoError(t, err)

	// A later invalid value falls back to the current stored one.
	in.SiteDefaultThumbnailURI = "not a url"
	updated, err := svc.Update(context.Background(), wmID, in)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/thumb.png", updated.SiteDefaultThumbnailURI)
}
