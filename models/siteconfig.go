package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteConfig is a singleton document. It is lazily created with
// DefaultSiteConfig on first webmaster access.
type SiteConfig struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IsRegistrationEnabled   bool               `bson:"isRegistrationEnabled" json:"isRegistrationEnabled"`
	IsCommentsEnabled       bool               `bson:"isCommentsEnabled" json:"isCommentsEnabled"`
	SiteName                string             `bson:"siteName" json:"siteName"`
	SiteMetaDataKeywords    string             `bson:"siteMetaDataKeywords" json:"siteMetaDataKeywords"`
	SiteMetaDataAuthor      string             `bson:"siteMetaDataAuthor" json:"siteMetaDataAuthor"`
	SiteMetaDataDescription string             `bson:"siteMetaDataDescription" json:"siteMetaDataDescription"`
	GoogleAnalyticsScript   string             `bson:"googleAnalyticsScript" json:"googleAnalyticsScript"`
	InspectletScript        string             `bson:"inspectletScript" json:"inspectletScript"`
	SiteAdminEmail          string             `bson:"siteAdminEmail" json:"siteAdminEmail"`
	SiteDefaultThumbnailURI string             `bson:"siteDefaultThumbnailUri" json:"siteDefaultThumbnailUri"`
	DefaultPaginationLimit  int                `bson:"defaultPaginationLimit" json:"defaultPaginationLimit"`
	SearchLimit             int                `bson:"searchLimit" json:"searchLimit"`
	HomeWelcomeText         string             `bson:"homeWelcomeText" json:"homeWelcomeText"`
	HomeWelcomeSubText      string             `bson:"homeWelcomeSubText" json:"homeWelcomeSubText"`
	HomepageWelcomeImage    string             `bson:"homepageWelcomeImage" json:"homepageWelcomeImage"`
	CopyrightText           string             `bson:"copyrightText" json:"copyrightText"`
	CloudflareSiteKey       string             `bson:"cloudflareSiteKey" json:"cloudflareSiteKey"`
	CloudflareServerKey     string             `bson:"cloudflareServerKey" json:"-"`
	LastModifiedBy          string             `bson:"lastModifiedBy" json:"lastModifiedBy"`
	LastModifiedDate        time.Time          `bson:"lastModifiedDate" json:"lastModifiedDate"`
}

// DefaultSiteConfig returns the safe defaults used when no config document
// exists yet.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		IsRegistrationEnabled:  true,
		IsCommentsEnabled:      false,
		SiteName:               "Blog-Site",
		DefaultPaginationLimit: 10,
		SearchLimit:            10,
		LastModifiedBy:         "System",
		LastModifiedDate:       time.Now(),
	}
}
