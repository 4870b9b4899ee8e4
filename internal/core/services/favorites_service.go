package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/srgjo27/service_booking/internal/core/ports"
)

var ErrInvalidFavorite = errors.New("user id and shop id are required")

type FavoritesService struct {
	repo ports.FavoritesRepository
}

func NewFavoritesService(repo ports.FavoritesRepository) *FavoritesService {
	return &FavoritesService{repo: repo}
}

// Toggle flips the favorite flag and reports the new state.
func (s *FavoritesService) Toggle(ctx context.Context, userID, shopID string) (bool, error) {
	userID, shopID = strings.TrimSpace(userID), strings.TrimSpace(shopID)
	if userID == "" || shopID == "" {
		return false, ErrInvalidFavorite
	}
	fav, err := s.repo.Toggle(ctx, userID, shopID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return fav, nil
}

func (s *FavoritesService) IsFavorite(ctx context.Context, userID, shopID string) (bool, error) {
	userID, shopID = strings.TrimSpace(userID), strings.TrimSpace(shopID)
	if userID == "" || shopID == "" {
		return false, nil
	}
	fav, err := s.repo.IsFavorite(ctx, userID, shopID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return fav, nil
}

func (s *FavoritesService) List(ctx context.Context, userID string) ([]string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidFavorite
	}
	ids, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
