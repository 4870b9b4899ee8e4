package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_user_favorites_unique,priority:1"`
	ShopID    string    `gorm:"not null;uniqueIndex:idx_user_favorites_unique,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Favorite) TableName() string {
	return "user_favorites"
}

type FavoritesRepository struct {
	db *gorm.DB
}

// Open wraps an existing connection pool so favorites share it with the
// lib/pq repositories.
func Open(sqlDB *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}

func NewFavoritesRepository(db *gorm.DB) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

// Toggle removes the favorite when it exists and adds it otherwise, and
// reports whether the shop is a favorite afterwards.
func (r *FavoritesRepository) Toggle(ctx context.Context, userID, shopID string) (bool, error) {
	var favorite bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Favorite
		err := tx.Where("user_id = ? AND shop_id = ?", userID, shopID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			favorite = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// A concurrent toggle may have inserted the same pair; either way
			// the shop ends up a favorite.
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "shop_id"}},
				DoNothing: true,
			}).Create(&Favorite{ID: uuid.New(), UserID: userID, ShopID: shopID}).Error
			if err != nil {
				return err
			}
			favorite = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}

func (r *FavoritesRepository) IsFavorite(ctx context.Context, userID, shopID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoritesRepository) ListByUser(ctx context.Context, userID string) ([]string, error) {
	var shopIDs []string
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("shop_id", &shopIDs).Error
	if err != nil {
		return nil, err
	}
	return shopIDs, nil
}
