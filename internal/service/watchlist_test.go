package service

import (
	"context"
	"testing"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToWatchlist(t *testing.T) {
	item := &entity.Item{Id: uuid.New(), SellerId: uuid.New(), Title: "소사나무", Status: common.Live}
	svc := &WatchlistService{
		watchlistRepo: newFakeWatchlistRepo(),
		itemRepo:      newFakeItemRepo(item),
	}

	userId := uuid.New().String()
	require.NoError(t, svc.AddToWatchlist(context.Background(), userId, item.Id.String()))

	err := svc.AddToWatchlist(context.Background(), userId, item.Id.String())
	assert.ErrorIs(t, err, ErrAlreadyInWatchlist)
}

func TestAddToWatchlistUnknownItem(t *testing.T) {
	svc := &WatchlistService{
		watchlistRepo: newFakeWatchlistRepo(),
		itemRepo:      newFakeItemRepo(),
	}

	err := svc.AddToWatchlist(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveFromWatchlist(t *testing.T) {
	item := &entity.Item{Id: uuid.New(), SellerId: uuid.New(), Title: "소사나무", Status: common.Live}
	watchlistRepo := newFakeWatchlistRepo()
	svc := &WatchlistService{
		watchlistRepo: watchlistRepo,
		itemRepo:      newFakeItemRepo(item),
	}

	userId := uuid.New().String()
	require.NoError(t, svc.AddToWatchlist(context.Background(), userId, item.Id.String()))
	require.NoError(t, svc.RemoveFromWatchlist(context.Background(), userId, item.Id.String()))

	err := svc.RemoveFromWatchlist(context.Background(), userId, item.Id.String())
	assert.ErrorIs(t, err, ErrNotInWatchlist)
}
