package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type FavouriteService struct {
	favouritesRepo models.FavouriteRepo
}

func NewFavouriteService(favouritesRepo models.FavouriteRepo) *FavouriteService {
	return &FavouriteService{
		favouritesRepo: favouritesRepo,
	}
}

func (fs *FavouriteService) AddToFavourites(ctx context.Context, userId uuid.UUID, itemId string, itemType string) (*dto.FavouritesResponse, error) {
	if fs.favouritesRepo == nil {
		return nil, models.ErrUnavailable
	}
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID: %w", models.ErrUnauthorized)
	}
	id, err := parseID("item id", itemId)
	if err != nil {
		return nil, err
	}
	itemType = strings.ToLower(strings.TrimSpace(itemType))
	if !models.FavouriteItemTypes[itemType] {
		return nil, models.Invalid("item type must be one of event, hotel or band")
	}

	fav, err := fs.favouritesRepo.AddToFavourites(ctx, userId, id.String(), itemType)
	if err != nil {
		return nil, err
	}
	res := dto.ToFavouritesResponse(fav)
	return &res, nil
}

func (fs *FavouriteService) RemoveFromFavourites(ctx context.Context, userId uuid.UUID, itemId string) error {
	if fs.favouritesRepo == nil {
		return models.ErrUnavailable
	}
	if userId == uuid.Nil {
		return fmt.Errorf("invalid user ID: %w", models.ErrUnauthorized)
	}
	id, err := parseID("item id", itemId)
	if err != nil {
		return err
	}
	return fs.favouritesRepo.RemoveFromFavourites(ctx, userId, id.String())
}

func (fs *FavouriteService) GetFavouritesByUserID(ctx context.Context, userId uuid.UUID) (*dto.FavouritesResponse, error) {
	if fs.favouritesRepo == nil {
		return nil, models.ErrUnavailable
	}
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID: %w", models.ErrUnauthorized)
	}
	fav, err := fs.favouritesRepo.GetFavouritesByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}
	res := dto.ToFavouritesResponse(fav)
	return &res, nil
}
