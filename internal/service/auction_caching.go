package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"bonsai-auction-api/internal/entity"

	"github.com/redis/go-redis/v9"
)

const priceKeyPrefix = "auction:price:"

// AuctionCaching wraps the engine and mirrors the current price of live items
// into redis after every accepted bid, so read-heavy consumers (tickers,
// item pages) don't hit postgres. Redis failures are logged, never surfaced:
// the database remains the source of truth.
type AuctionCaching struct {
	Auction

	Redis *redis.Client
}

func (c *AuctionCaching) ProcessBid(ctx context.Context, itemId, bidderId string, amount int64, isProxy bool, maxProxyAmount *int64) (*entity.PlaceBidOutputModel, error) {
	result, err := c.Auction.ProcessBid(ctx, itemId, bidderId, amount, isProxy, maxProxyAmount)
	if err != nil {
		return nil, err
	}

	endsAt, err := time.Parse(time.RFC3339, result.Item.EndsAt)
	if err != nil {
		return result, nil
	}

	if ttl := time.Until(endsAt); ttl > 0 {
		key := priceCacheKey(itemId)
		val := strconv.FormatInt(result.Item.CurrentPrice, 10)
		if err := c.Redis.Set(ctx, key, val, ttl).Err(); err != nil {
			slog.Error("can't cache current price", slog.String("itemId", itemId), slog.Any("error", err))
		}
	}

	return result, nil
}

func (c *AuctionCaching) BuyNow(ctx context.Context, itemId, buyerId string) (*entity.BuyNowOutputModel, error) {
	result, err := c.Auction.BuyNow(ctx, itemId, buyerId)
	if err != nil {
		return nil, err
	}

	// Item is no longer live, drop the cached price.
	if err := c.Redis.Del(ctx, priceCacheKey(itemId)).Err(); err != nil {
		slog.Error("can't drop cached price", slog.String("itemId", itemId), slog.Any("error", err))
	}

	return result, nil
}

func priceCacheKey(itemId string) string {
	return priceKeyPrefix + itemId
}
