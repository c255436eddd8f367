package service

import (
	"context"
	"errors"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
)

type BidHistoryService struct {
	bidRepo  repo.Bid
	itemRepo repo.Item
}

func NewBidHistoryService(repos *repo.Repositories) *BidHistoryService {
	return &BidHistoryService{
		bidRepo:  repos.Bid,
		itemRepo: repos.Item,
	}
}

func (s *BidHistoryService) GetItemBids(ctx context.Context, itemId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	_, err := s.itemRepo.GetItemById(ctx, itemId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	bids, err := s.bidRepo.GetItemBids(ctx, itemId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidHistoryService) GetUserBids(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetUserBids(ctx, bidderId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}
