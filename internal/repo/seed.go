// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file loads fixture data (topics, users, articles,
// comments) into an empty store, for local development and tests.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// SeedData is the JSON document accepted by LoadSeedFile.
type SeedData struct {
	Topics   []domain.Topic   `json:"topics"`
	Users    []domain.User    `json:"users"`
	Articles []domain.Article `json:"articles"`
	Comments []domain.Comment `json:"comments"`
}

// LoadSeedFile reads and decodes a seed document from path.
func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return &data, nil
}

// Seed inserts data in dependency order inside one transaction. Ids present
// in the document are kept; zero ids are generated by the store.
func Seed(ctx context.Context, db *gorm.DB, data *SeedData) error {
	if data == nil {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(data.Topics) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(data.Topics, 100).Error; err != nil {
				return fmt.Errorf("seed topics: %w", err)
			}
		}
		if len(data.Users) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(data.Users, 100).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(data.Articles) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(data.Articles, 100).Error; err != nil {
				return fmt.Errorf("seed articles: %w", err)
			}
		}
		if len(data.Comments) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(data.Comments, 100).Error; err != nil {
				return fmt.Errorf("seed comments: %w", err)
			}
		}
		return nil
	})
}
