package store

import (
	"context"

	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSiteConfig returns the singleton config document, or nil when none
// exists yet.
func (db *DB) GetSiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := db.SiteConfigs().FindOne(ctx, bson.M{}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (db *DB) CreateSiteConfig(ctx context.Context, cfg *models.SiteConfig) error {
	_, err := db.SiteConfigs().InsertOne(ctx, cfg)
	return err
}

// ReplaceSiteConfig overwrites the single config document, creating it when
// missing.
func (db *DB) ReplaceSiteConfig(ctx context.Context, cfg *models.SiteConfig) error {
	_, err := db.SiteConfigs().ReplaceOne(ctx, bson.M{}, cfg, options.Replace().SetUpsert(true))
	return err
}
