package service

import (
	"context"
	"errors"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
)

const maxAutoExtendMinutes = 10

type ItemService struct {
	itemRepo repo.Item
	userRepo repo.User
}

func NewItemService(repos *repo.Repositories) *ItemService {
	return &ItemService{
		itemRepo: repos.Item,
		userRepo: repos.User,
	}
}

// CreateItem registers a seller's listing. It always enters the admin review
// queue as PENDING_REVIEW; going on sale requires approval.
func (s *ItemService) CreateItem(ctx context.Context, input *entity.CreateItemInput) (*entity.ItemOutputModel, error) {
	if input.StartPrice <= 0 || input.BidStep <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.BuyNowPrice != nil && *input.BuyNowPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.ReservePrice != nil && *input.ReservePrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrInvalidAuctionWindow
	}
	if input.AutoExtendMinutes < 0 || input.AutoExtendMinutes > maxAutoExtendMinutes {
		return nil, ErrInvalidAutoExtend
	}

	_, err := s.userRepo.GetUserById(ctx, input.SellerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	input.Status = common.PendingReview
	id, err := s.itemRepo.CreateItem(ctx, input)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapItem(item), nil
}

func (s *ItemService) GetItemById(ctx context.Context, itemId string) (*entity.ItemOutputModel, error) {
	item, err := s.itemRepo.GetItemById(ctx, itemId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	return mapItem(item), nil
}

func (s *ItemService) GetItems(ctx context.Context, filter *entity.ItemFilter, pg *entity.PaginationInput) ([]entity.ItemOutputModel, error) {
	items, err := s.itemRepo.GetItems(ctx, filter, pg)
	if err != nil {
		return nil, err
	}

	return mapItems(items), nil
}
