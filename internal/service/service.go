package service

import (
	"context"
	"time"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"

	"github.com/redis/go-redis/v9"
)

type Diagnostics interface {
	Ping() error
}

// Auction is the bidding and lifecycle engine. The sweeps are driven by an
// external timer through the HTTP surface; identity is always an explicit
// parameter, never ambient.
type Auction interface {
	StartScheduledAuctions(ctx context.Context, now time.Time) (int, error)
	EndExpiredAuctions(ctx context.Context, now time.Time) (int, error)
	ProcessBid(ctx context.Context, itemId, bidderId string, amount int64, isProxy bool, maxProxyAmount *int64) (*entity.PlaceBidOutputModel, error)
	BuyNow(ctx context.Context, itemId, buyerId string) (*entity.BuyNowOutputModel, error)
}

type Item interface {
	CreateItem(ctx context.Context, input *entity.CreateItemInput) (*entity.ItemOutputModel, error)
	GetItemById(ctx context.Context, itemId string) (*entity.ItemOutputModel, error)
	GetItems(ctx context.Context, filter *entity.ItemFilter, pg *entity.PaginationInput) ([]entity.ItemOutputModel, error)
}

type Admin interface {
	ApproveItem(ctx context.Context, actorId, itemId string) (*entity.ItemOutputModel, error)
	RejectItem(ctx context.Context, actorId, itemId, reason string) (*entity.ItemOutputModel, error)
	GetDashboardCounts(ctx context.Context, actorId string) (*entity.DashboardCounts, error)
}

type Watchlist interface {
	AddToWatchlist(ctx context.Context, userId, itemId string) error
	RemoveFromWatchlist(ctx context.Context, userId, itemId string) error
	GetUserWatchlist(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.ItemOutputModel, error)
}

type Order interface {
	GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.OrderOutputModel, error)
	GetUserOrders(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.OrderOutputModel, error)
	MarkPaid(ctx context.Context, orderNumber string) (*entity.OrderOutputModel, error)
	CancelOrder(ctx context.Context, orderNumber string) (*entity.OrderOutputModel, error)
}

type Notification interface {
	GetUserNotifications(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.NotificationOutputModel, error)
	MarkRead(ctx context.Context, notificationId string) error
}

type BidHistory interface {
	GetItemBids(ctx context.Context, itemId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetUserBids(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
}

type Services struct {
	Diagnostics  Diagnostics
	Auction      Auction
	Item         Item
	Admin        Admin
	Watchlist    Watchlist
	Order        Order
	Notification Notification
	BidHistory   BidHistory
}

// Deps are the optional collaborators of the engine: the bid/order event
// publisher and the redis client for the price cache. Either may be nil.
type Deps struct {
	Events EventPublisher
	Redis  *redis.Client
}

func NewServices(repos *repo.Repositories, deps Deps) *Services {
	var auction Auction = NewAuctionService(repos, deps.Events)
	if deps.Redis != nil {
		auction = &AuctionCaching{Auction: auction, Redis: deps.Redis}
	}

	return &Services{
		Diagnostics:  NewDiagnosticsService(repos),
		Auction:      auction,
		Item:         NewItemService(repos),
		Admin:        NewAdminService(repos),
		Watchlist:    NewWatchlistService(repos),
		Order:        NewOrderService(repos),
		Notification: NewNotificationService(repos),
		BidHistory:   NewBidHistoryService(repos),
	}
}
