package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/broker"

	"github.com/google/uuid"
)

// EventPublisher mirrors pkg/broker.Publisher; nil disables publishing.
type EventPublisher interface {
	PublishBid(event broker.BidEvent) error
	PublishOrder(event broker.OrderEvent) error
}

// errSkipped marks an item that no longer matched the sweep predicate once
// the row lock was taken; it is counted out, not reported.
var errSkipped = errors.New("item skipped")

type AuctionService struct {
	auctionRepo      repo.Auction
	watchlistRepo    repo.Watchlist
	notificationRepo repo.Notification
	events           EventPublisher

	now func() time.Time
}

func NewAuctionService(repos *repo.Repositories, events EventPublisher) *AuctionService {
	return &AuctionService{
		auctionRepo:      repos.Auction,
		watchlistRepo:    repos.Watchlist,
		notificationRepo: repos.Notification,
		events:           events,
		now:              time.Now,
	}
}

// StartScheduledAuctions moves every SCHEDULED item whose start time has
// passed to LIVE. Re-running is harmless: the conditional update excludes
// items that already went live.
func (s *AuctionService) StartScheduledAuctions(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.auctionRepo.ListStartableItemIds(ctx, now)
	if err != nil {
		return 0, err
	}

	started := 0
	for _, id := range ids {
		item, err := s.startOne(ctx, id)
		if err != nil {
			if errors.Is(err, errSkipped) {
				continue
			}

			slog.Error("can't start auction", slog.String("itemId", id), slog.Any("error", err))
			continue
		}

		started++
		s.notifyWatchers(ctx, item, &entity.CreateNotificationInput{
			Type:    common.NotificationAuctionStart,
			Title:   "경매 시작",
			Message: fmt.Sprintf("관심 상품 \"%s\"의 경매가 시작되었습니다.", item.Title),
			Data: map[string]any{
				"itemId":    item.Id.String(),
				"itemTitle": item.Title,
			},
		})
	}

	return started, nil
}

func (s *AuctionService) startOne(ctx context.Context, itemId string) (*entity.Item, error) {
	var item *entity.Item

	err := s.auctionRepo.WithTx(func(tx *sql.Tx) error {
		var err error
		item, err = s.auctionRepo.GetItemForUpdate(ctx, tx, itemId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return errSkipped
			}

			return err
		}

		if item.Status != common.Scheduled {
			return errSkipped
		}

		if err := s.auctionRepo.StartItem(ctx, tx, itemId); err != nil {
			return err
		}

		item.Status = common.Live
		item.CurrentPrice = item.StartPrice

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// EndExpiredAuctions closes every LIVE item whose deadline has passed. Each
// item gets its own transaction so one failure doesn't poison the sweep, and
// the deadline is re-checked under the row lock because a late bid may have
// extended it between the listing select and the lock.
func (s *AuctionService) EndExpiredAuctions(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.auctionRepo.ListExpiredItemIds(ctx, now)
	if err != nil {
		return 0, err
	}

	ended := 0
	for _, id := range ids {
		outcome, err := s.endOne(ctx, id, now)
		if err != nil {
			if errors.Is(err, errSkipped) {
				continue
			}

			slog.Error("can't end auction", slog.String("itemId", id), slog.Any("error", err))
			continue
		}

		ended++
		s.settleSideEffects(ctx, outcome, now)
	}

	return ended, nil
}

type endOutcome struct {
	item       *entity.Item
	highestBid *entity.Bid
	order      *entity.Order
}

func (s *AuctionService) endOne(ctx context.Context, itemId string, now time.Time) (*endOutcome, error) {
	outcome := &endOutcome{}

	err := s.auctionRepo.WithTx(func(tx *sql.Tx) error {
		item, err := s.auctionRepo.GetItemForUpdate(ctx, tx, itemId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return errSkipped
			}

			return err
		}

		// A concurrent buy-now may have ended the item, or a late bid
		// extended the deadline.
		if item.Status != common.Live || item.EndsAt.After(now) {
			return errSkipped
		}

		highestBid, err := s.auctionRepo.GetHighestBid(ctx, tx, itemId)
		if err != nil {
			return err
		}

		if err := s.auctionRepo.EndItem(ctx, tx, itemId, nil); err != nil {
			return err
		}
		item.Status = common.Ended

		outcome.item = item
		outcome.highestBid = highestBid

		if !isWinning(item, highestBid) {
			return nil
		}

		order, err := s.auctionRepo.CreateOrder(ctx, tx, newOrderInput(item, highestBid.BidderId.String(), highestBid.Amount, now))
		if err != nil {
			return err
		}

		if err := s.auctionRepo.MarkBidWinning(ctx, tx, highestBid.Id); err != nil {
			return err
		}

		outcome.order = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// isWinning: a bid exists and the reserve, when set, is met.
func isWinning(item *entity.Item, highestBid *entity.Bid) bool {
	if highestBid == nil {
		return false
	}

	return item.ReservePrice == nil || highestBid.Amount >= *item.ReservePrice
}

func (s *AuctionService) settleSideEffects(ctx context.Context, outcome *endOutcome, now time.Time) {
	item := outcome.item

	if outcome.order != nil {
		s.notify(ctx, &entity.CreateNotificationInput{
			UserId:  outcome.highestBid.BidderId.String(),
			Type:    common.NotificationAuctionWon,
			Title:   "낙찰 축하합니다!",
			Message: fmt.Sprintf("\"%s\" 낙찰을 축하합니다. 24시간 이내에 결제를 완료해주세요.", item.Title),
			Data: map[string]any{
				"itemId":      item.Id.String(),
				"itemTitle":   item.Title,
				"finalPrice":  outcome.highestBid.Amount,
				"orderNumber": outcome.order.OrderNumber,
			},
		})
		s.publishOrder(outcome.order, now)

		return
	}

	reason := common.ReasonNoBids
	if outcome.highestBid != nil {
		reason = common.ReasonReserveNotMet
	}

	s.notifyWatchers(ctx, item, &entity.CreateNotificationInput{
		Type:    common.NotificationAuctionLost,
		Title:   "경매 종료",
		Message: fmt.Sprintf("\"%s\" 경매가 유찰되었습니다.", item.Title),
		Data: map[string]any{
			"itemId":    item.Id.String(),
			"itemTitle": item.Title,
			"reason":    reason,
		},
	})
}

// ProcessBid validates and accepts a bid against a row-locked snapshot of the
// item, so two concurrent bids are serialized and the later one is judged
// against the earlier one's price.
func (s *AuctionService) ProcessBid(ctx context.Context, itemId, bidderId string, amount int64, isProxy bool, maxProxyAmount *int64) (*entity.PlaceBidOutputModel, error) {
	if amount <= 0 {
		return nil, ErrInvalidBidAmount
	}
	if isProxy {
		if maxProxyAmount == nil {
			return nil, ErrProxyCeilingRequired
		}
		if *maxProxyAmount < amount {
			return nil, ErrProxyCeilingTooLow
		}
	}

	now := s.now()
	result := &entity.PlaceBidResult{}
	var previousPrice int64
	var outbid []uuid.UUID

	err := s.auctionRepo.WithTx(func(tx *sql.Tx) error {
		item, err := s.auctionRepo.GetItemForUpdate(ctx, tx, itemId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrItemNotFound
			}

			return err
		}

		if item.Status != common.Live {
			return ErrAuctionNotLive
		}
		if item.SellerId.String() == bidderId {
			return ErrOwnItemBid
		}
		// Redundant with the status check, but guards against sweep lag.
		if now.After(item.EndsAt) {
			return ErrAuctionExpired
		}

		minimum := MinimumBid(item)
		if amount < minimum {
			return &BidTooLowError{MinimumBid: minimum}
		}

		previousPrice = item.CurrentPrice

		// Demote before inserting so at most one winning bid exists
		// at any statement boundary.
		outbid, err = s.auctionRepo.DemoteWinningBids(ctx, tx, itemId, uuid.Nil)
		if err != nil {
			return err
		}

		bid, err := s.auctionRepo.InsertBid(ctx, tx, &entity.CreateBidInput{
			ItemId:         itemId,
			BidderId:       bidderId,
			Amount:         amount,
			IsProxy:        isProxy,
			MaxProxyAmount: maxProxyAmount,
			IsWinning:      true,
		})
		if err != nil {
			return err
		}

		// Sliding auto-extension: a bid inside the trailing window pushes
		// the deadline to now + window, not endsAt + window.
		endsAt := item.EndsAt
		if item.AutoExtendMinutes > 0 {
			window := time.Duration(item.AutoExtendMinutes) * time.Minute
			if now.After(item.EndsAt.Add(-window)) {
				endsAt = now.Add(window)
			}
		}

		if err := s.auctionRepo.UpdateItemForBid(ctx, tx, itemId, amount, endsAt); err != nil {
			return err
		}

		item.CurrentPrice = amount
		item.EndsAt = endsAt
		result.Bid = bid
		result.Item = item

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, demoted := range outbid {
		if demoted.String() == bidderId {
			// Bidder raised their own bid.
			continue
		}

		s.notify(ctx, &entity.CreateNotificationInput{
			UserId:  demoted.String(),
			Type:    common.NotificationOutbid,
			Title:   "상위 입찰 발생",
			Message: fmt.Sprintf("\"%s\"에 더 높은 입찰이 등록되었습니다.", result.Item.Title),
			Data: map[string]any{
				"itemId":       result.Item.Id.String(),
				"itemTitle":    result.Item.Title,
				"currentPrice": result.Item.CurrentPrice,
			},
		})
	}

	s.publishBid(result, previousPrice, now)

	return mapPlaceBid(result), nil
}

// BuyNow ends the auction immediately at the fixed price, bypassing the
// minimum-increment rule by design.
func (s *AuctionService) BuyNow(ctx context.Context, itemId, buyerId string) (*entity.BuyNowOutputModel, error) {
	now := s.now()
	result := &entity.BuyNowResult{}

	err := s.auctionRepo.WithTx(func(tx *sql.Tx) error {
		item, err := s.auctionRepo.GetItemForUpdate(ctx, tx, itemId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrItemNotFound
			}

			return err
		}

		if item.Status != common.Live {
			return ErrAuctionNotLive
		}
		if item.BuyNowPrice == nil {
			return ErrBuyNowNotAvailable
		}
		if item.SellerId.String() == buyerId {
			return ErrOwnItemBid
		}

		price := *item.BuyNowPrice

		if err := s.auctionRepo.EndItem(ctx, tx, itemId, &price); err != nil {
			return err
		}

		if _, err := s.auctionRepo.DemoteWinningBids(ctx, tx, itemId, uuid.Nil); err != nil {
			return err
		}

		bid, err := s.auctionRepo.InsertBid(ctx, tx, &entity.CreateBidInput{
			ItemId:    itemId,
			BidderId:  buyerId,
			Amount:    price,
			IsWinning: true,
		})
		if err != nil {
			return err
		}

		order, err := s.auctionRepo.CreateOrder(ctx, tx, newOrderInput(item, buyerId, price, now))
		if err != nil {
			return err
		}

		result.Bid = bid
		result.Order = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrder(result.Order, now)

	return mapBuyNow(result), nil
}

// notify persists a notification record, best effort. Failures are logged and
// never abort the owning operation.
func (s *AuctionService) notify(ctx context.Context, input *entity.CreateNotificationInput) {
	if err := s.notificationRepo.CreateNotification(ctx, input); err != nil {
		slog.Error("can't create notification",
			slog.String("userId", input.UserId),
			slog.String("type", input.Type),
			slog.Any("error", err))
	}
}

func (s *AuctionService) notifyWatchers(ctx context.Context, item *entity.Item, template *entity.CreateNotificationInput) {
	watchers, err := s.watchlistRepo.GetWatcherIds(ctx, item.Id.String())
	if err != nil {
		slog.Error("can't list watchers", slog.String("itemId", item.Id.String()), slog.Any("error", err))
		return
	}

	for _, watcher := range watchers {
		input := *template
		input.UserId = watcher
		s.notify(ctx, &input)
	}
}

func (s *AuctionService) publishBid(result *entity.PlaceBidResult, previousPrice int64, now time.Time) {
	if s.events == nil {
		return
	}

	event := broker.BidEvent{
		ItemId:        result.Item.Id.String(),
		BidId:         result.Bid.Id.String(),
		BidderId:      result.Bid.BidderId.String(),
		Amount:        result.Bid.Amount,
		PreviousPrice: previousPrice,
		EndsAt:        result.Item.EndsAt,
		Timestamp:     now,
	}

	if err := s.events.PublishBid(event); err != nil {
		slog.Error("can't publish bid event", slog.String("itemId", event.ItemId), slog.Any("error", err))
	}
}

func (s *AuctionService) publishOrder(order *entity.Order, now time.Time) {
	if s.events == nil {
		return
	}

	event := broker.OrderEvent{
		ItemId:      order.ItemId.String(),
		OrderNumber: order.OrderNumber,
		BuyerId:     order.BuyerId.String(),
		FinalPrice:  order.FinalPrice,
		TotalAmount: order.TotalAmount,
		Timestamp:   now,
	}

	if err := s.events.PublishOrder(event); err != nil {
		slog.Error("can't publish order event", slog.String("orderNumber", event.OrderNumber), slog.Any("error", err))
	}
}
