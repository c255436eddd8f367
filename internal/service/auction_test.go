package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func liveItem(now time.Time) *entity.Item {
	return &entity.Item{
		Id:                uuid.New(),
		SellerId:          uuid.New(),
		Title:             "흑송 분재",
		StartPrice:        100000,
		CurrentPrice:      100000,
		BidStep:           10000,
		StartsAt:          now.Add(-time.Hour),
		EndsAt:            now.Add(time.Hour),
		AutoExtendMinutes: 5,
		Status:            common.Live,
	}
}

func newTestAuctionService(auctionRepo *fakeAuctionRepo, now time.Time) (*AuctionService, *fakeWatchlistRepo, *fakeNotificationRepo, *fakePublisher) {
	watchlistRepo := newFakeWatchlistRepo()
	notificationRepo := &fakeNotificationRepo{}
	publisher := &fakePublisher{}

	svc := &AuctionService{
		auctionRepo:      auctionRepo,
		watchlistRepo:    watchlistRepo,
		notificationRepo: notificationRepo,
		events:           publisher,
		now:              func() time.Time { return now },
	}

	return svc, watchlistRepo, notificationRepo, publisher
}

func TestProcessBidAcceptsAtMinimum(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, _, publisher := newTestAuctionService(auctionRepo, now)

	bidder := uuid.New().String()
	result, err := svc.ProcessBid(context.Background(), item.Id.String(), bidder, 110000, false, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(110000), result.Bid.Amount)
	assert.True(t, result.Bid.IsWinning)
	assert.Equal(t, int64(110000), result.Item.CurrentPrice)
	assert.Equal(t, int64(110000), auctionRepo.items[item.Id.String()].CurrentPrice)
	assert.Len(t, publisher.bids, 1)
}

func TestProcessBidRejectsBelowMinimum(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 105000, false, nil)
	require.Error(t, err)

	var tooLow *BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	assert.Equal(t, int64(110000), tooLow.MinimumBid)
}

func TestProcessBidRejectsSeller(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), item.SellerId.String(), 110000, false, nil)
	assert.ErrorIs(t, err, ErrOwnItemBid)
}

func TestProcessBidRejectsNonLiveItem(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.Status = common.Scheduled
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	assert.ErrorIs(t, err, ErrAuctionNotLive)
}

func TestProcessBidRejectsExpiredDeadline(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(-time.Minute)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	assert.ErrorIs(t, err, ErrAuctionExpired)
}

func TestProcessBidRejectsMissingItem(t *testing.T) {
	now := time.Now()
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(), now)

	_, err := svc.ProcessBid(context.Background(), uuid.New().String(), uuid.New().String(), 110000, false, nil)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestProcessBidValidatesProxyCeiling(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, _, _ := newTestAuctionService(auctionRepo, now)

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, true, nil)
	assert.ErrorIs(t, err, ErrProxyCeilingRequired)

	_, err = svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, true, int64Ptr(100000))
	assert.ErrorIs(t, err, ErrProxyCeilingTooLow)

	result, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, true, int64Ptr(200000))
	require.NoError(t, err)
	assert.True(t, result.Bid.IsProxy)

	require.Len(t, auctionRepo.bids, 1)
	require.NotNil(t, auctionRepo.bids[0].MaxProxyAmount)
	assert.Equal(t, int64(200000), *auctionRepo.bids[0].MaxProxyAmount)
}

func TestProcessBidResponseHidesReservePrice(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.ReservePrice = int64Ptr(800000)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	result, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	require.NoError(t, err)

	payload, err := json.Marshal(result)
	require.NoError(t, err)

	body := string(payload)
	assert.NotContains(t, body, "reservePrice")
	assert.NotContains(t, body, "800000")
	assert.True(t, strings.Contains(body, `"bid"`))
	assert.True(t, strings.Contains(body, `"item"`))
	assert.True(t, strings.Contains(body, `"currentPrice"`))
}

func TestProcessBidRejectsNonPositiveAmount(t *testing.T) {
	now := time.Now()
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(), now)

	_, err := svc.ProcessBid(context.Background(), uuid.New().String(), uuid.New().String(), 0, false, nil)
	assert.ErrorIs(t, err, ErrInvalidBidAmount)
}

func TestProcessBidExtendsDeadlineInsideWindow(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(3 * time.Minute) // inside the 5 minute window

	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	result, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	require.NoError(t, err)

	assert.Equal(t, now.Add(5*time.Minute).Format(time.RFC3339), result.Item.EndsAt)
}

func TestProcessBidKeepsDeadlineOutsideWindow(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	endsAt := now.Add(30 * time.Minute)
	item.EndsAt = endsAt

	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	result, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	require.NoError(t, err)

	assert.Equal(t, endsAt.Format(time.RFC3339), result.Item.EndsAt)
}

func TestProcessBidKeepsDeadlineAtWindowBoundary(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	endsAt := now.Add(5 * time.Minute) // exactly window away: not yet inside
	item.EndsAt = endsAt

	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	result, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	require.NoError(t, err)

	assert.Equal(t, endsAt.Format(time.RFC3339), result.Item.EndsAt)
}

func TestProcessBidExtendsDeadlineJustInsideBoundary(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(5*time.Minute - time.Second)

	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	result, err := svc.ProcessBid(context.Background(), item.Id.String(), uuid.New().String(), 110000, false, nil)
	require.NoError(t, err)

	assert.Equal(t, now.Add(5*time.Minute).Format(time.RFC3339), result.Item.EndsAt)
}

func TestProcessBidDemotesAndNotifiesPreviousBidder(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, notificationRepo, _ := newTestAuctionService(auctionRepo, now)

	first := uuid.New().String()
	second := uuid.New().String()

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), first, 110000, false, nil)
	require.NoError(t, err)

	_, err = svc.ProcessBid(context.Background(), item.Id.String(), second, 120000, false, nil)
	require.NoError(t, err)

	winning := auctionRepo.winningBids(item.Id.String())
	require.Len(t, winning, 1)
	assert.Equal(t, second, winning[0].BidderId.String())

	outbid := notificationRepo.ofType(common.NotificationOutbid)
	require.Len(t, outbid, 1)
	assert.Equal(t, first, outbid[0].UserId)
}

func TestProcessBidSkipsOutbidNoticeForSelfRaise(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	svc, _, notificationRepo, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	bidder := uuid.New().String()

	_, err := svc.ProcessBid(context.Background(), item.Id.String(), bidder, 110000, false, nil)
	require.NoError(t, err)

	_, err = svc.ProcessBid(context.Background(), item.Id.String(), bidder, 120000, false, nil)
	require.NoError(t, err)

	assert.Empty(t, notificationRepo.ofType(common.NotificationOutbid))
}

func TestBuyNowCreatesOrderWithCommission(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.BuyNowPrice = int64Ptr(2000000)
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, _, publisher := newTestAuctionService(auctionRepo, now)

	buyer := uuid.New().String()
	result, err := svc.BuyNow(context.Background(), item.Id.String(), buyer)
	require.NoError(t, err)

	assert.Equal(t, int64(2000000), result.Order.FinalPrice)
	assert.Equal(t, int64(140000), result.Order.BuyerPremium)
	assert.Equal(t, int64(200000), result.Order.SellerFee)
	assert.Equal(t, int64(2140000), result.Order.TotalAmount)
	assert.Equal(t, common.PaymentPending, result.Order.PaymentStatus)
	assert.True(t, result.Bid.IsWinning)

	assert.Equal(t, common.Ended, auctionRepo.items[item.Id.String()].Status)
	assert.Equal(t, []string{result.Order.OrderNumber}, publisher.orders)
}

func TestBuyNowRequiresFixedPrice(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.BuyNow(context.Background(), item.Id.String(), uuid.New().String())
	assert.ErrorIs(t, err, ErrBuyNowNotAvailable)
}

func TestBuyNowRejectsSeller(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.BuyNowPrice = int64Ptr(500000)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.BuyNow(context.Background(), item.Id.String(), item.SellerId.String())
	assert.ErrorIs(t, err, ErrOwnItemBid)
}

func TestBuyNowRejectsNonLiveItem(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.Status = common.Ended
	item.BuyNowPrice = int64Ptr(500000)
	svc, _, _, _ := newTestAuctionService(newFakeAuctionRepo(item), now)

	_, err := svc.BuyNow(context.Background(), item.Id.String(), uuid.New().String())
	assert.ErrorIs(t, err, ErrAuctionNotLive)
}

func TestStartScheduledAuctionsGoesLiveAndNotifiesWatchers(t *testing.T) {
	now := time.Now()
	scheduled := liveItem(now)
	scheduled.Status = common.Scheduled
	scheduled.CurrentPrice = 0

	future := liveItem(now)
	future.Status = common.Scheduled
	future.StartsAt = now.Add(time.Hour)

	auctionRepo := newFakeAuctionRepo(scheduled, future)
	svc, watchlistRepo, notificationRepo, _ := newTestAuctionService(auctionRepo, now)

	watcher := uuid.New().String()
	require.NoError(t, watchlistRepo.AddToWatchlist(context.Background(), watcher, scheduled.Id.String()))

	started, err := svc.StartScheduledAuctions(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, started)
	assert.Equal(t, common.Live, auctionRepo.items[scheduled.Id.String()].Status)
	assert.Equal(t, scheduled.StartPrice, auctionRepo.items[scheduled.Id.String()].CurrentPrice)
	assert.Equal(t, common.Scheduled, auctionRepo.items[future.Id.String()].Status)

	startNotices := notificationRepo.ofType(common.NotificationAuctionStart)
	require.Len(t, startNotices, 1)
	assert.Equal(t, watcher, startNotices[0].UserId)
}

func TestEndExpiredAuctionsSettlesWinner(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(-time.Minute)
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, notificationRepo, publisher := newTestAuctionService(auctionRepo, now)

	winner := uuid.New()
	auctionRepo.bids = append(auctionRepo.bids, &entity.Bid{
		Id:       uuid.New(),
		ItemId:   item.Id,
		BidderId: winner,
		Amount:   150000,
	})

	ended, err := svc.EndExpiredAuctions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, ended)

	require.Len(t, auctionRepo.orders, 1)
	order := auctionRepo.orders[0]
	assert.Equal(t, winner, order.BuyerId)
	assert.Equal(t, int64(150000), order.FinalPrice)
	assert.Equal(t, TotalAmount(150000), order.TotalAmount)

	won := notificationRepo.ofType(common.NotificationAuctionWon)
	require.Len(t, won, 1)
	assert.Equal(t, winner.String(), won[0].UserId)
	assert.Equal(t, []string{order.OrderNumber}, publisher.orders)
}

func TestEndExpiredAuctionsReportsNoBids(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(-time.Minute)
	auctionRepo := newFakeAuctionRepo(item)
	svc, watchlistRepo, notificationRepo, _ := newTestAuctionService(auctionRepo, now)

	watcher := uuid.New().String()
	require.NoError(t, watchlistRepo.AddToWatchlist(context.Background(), watcher, item.Id.String()))

	ended, err := svc.EndExpiredAuctions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, ended)
	assert.Empty(t, auctionRepo.orders)

	lost := notificationRepo.ofType(common.NotificationAuctionLost)
	require.Len(t, lost, 1)
	assert.Equal(t, common.ReasonNoBids, lost[0].Data["reason"])
}

func TestEndExpiredAuctionsReportsReserveNotMet(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(-time.Minute)
	item.ReservePrice = int64Ptr(300000)
	auctionRepo := newFakeAuctionRepo(item)
	svc, watchlistRepo, notificationRepo, _ := newTestAuctionService(auctionRepo, now)

	watcher := uuid.New().String()
	require.NoError(t, watchlistRepo.AddToWatchlist(context.Background(), watcher, item.Id.String()))

	auctionRepo.bids = append(auctionRepo.bids, &entity.Bid{
		Id:       uuid.New(),
		ItemId:   item.Id,
		BidderId: uuid.New(),
		Amount:   150000,
	})

	ended, err := svc.EndExpiredAuctions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, ended)
	assert.Empty(t, auctionRepo.orders)
	assert.Equal(t, common.Ended, auctionRepo.items[item.Id.String()].Status)

	lost := notificationRepo.ofType(common.NotificationAuctionLost)
	require.Len(t, lost, 1)
	assert.Equal(t, common.ReasonReserveNotMet, lost[0].Data["reason"])
}

func TestEndExpiredAuctionsSettlesAtReserve(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(-time.Minute)
	item.ReservePrice = int64Ptr(150000)
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, _, _ := newTestAuctionService(auctionRepo, now)

	auctionRepo.bids = append(auctionRepo.bids, &entity.Bid{
		Id:       uuid.New(),
		ItemId:   item.Id,
		BidderId: uuid.New(),
		Amount:   150000,
	})

	ended, err := svc.EndExpiredAuctions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, ended)
	assert.Len(t, auctionRepo.orders, 1)
}

func TestEndOneSkipsExtendedDeadline(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(2 * time.Minute) // a late bid already pushed it forward
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, _, _ := newTestAuctionService(auctionRepo, now)

	// The sweep listed the item before the extension landed; the re-check
	// under the row lock must refuse to close it.
	_, err := svc.endOne(context.Background(), item.Id.String(), now)
	assert.ErrorIs(t, err, errSkipped)
	assert.Equal(t, common.Live, auctionRepo.items[item.Id.String()].Status)
}

func TestEndOneSkipsAlreadyEndedItem(t *testing.T) {
	now := time.Now()
	item := liveItem(now)
	item.EndsAt = now.Add(-time.Minute)
	item.Status = common.Ended // a concurrent buy-now got there first
	auctionRepo := newFakeAuctionRepo(item)
	svc, _, _, _ := newTestAuctionService(auctionRepo, now)

	_, err := svc.endOne(context.Background(), item.Id.String(), now)
	assert.ErrorIs(t, err, errSkipped)
}
