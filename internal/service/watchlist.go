package service

import (
	"context"
	"errors"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
)

type WatchlistService struct {
	watchlistRepo repo.Watchlist
	itemRepo      repo.Item
}

func NewWatchlistService(repos *repo.Repositories) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: repos.Watchlist,
		itemRepo:      repos.Item,
	}
}

func (s *WatchlistService) AddToWatchlist(ctx context.Context, userId, itemId string) error {
	_, err := s.itemRepo.GetItemById(ctx, itemId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrItemNotFound
		}

		return err
	}

	err = s.watchlistRepo.AddToWatchlist(ctx, userId, itemId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return ErrAlreadyInWatchlist
		}

		return err
	}

	return nil
}

func (s *WatchlistService) RemoveFromWatchlist(ctx context.Context, userId, itemId string) error {
	err := s.watchlistRepo.RemoveFromWatchlist(ctx, userId, itemId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrNotInWatchlist
		}

		return err
	}

	return nil
}

func (s *WatchlistService) GetUserWatchlist(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.ItemOutputModel, error) {
	items, err := s.watchlistRepo.GetUserWatchlist(ctx, userId, pg)
	if err != nil {
		return nil, err
	}

	return mapItems(items), nil
}
