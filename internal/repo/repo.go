package repo

import (
	"context"
	"database/sql"
	"time"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/pgdb"
	"bonsai-auction-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	GetUserById(ctx context.Context, id string) (*entity.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type Item interface {
	CreateItem(ctx context.Context, input *entity.CreateItemInput) (uuid.UUID, error)
	GetItemById(ctx context.Context, id string) (*entity.Item, error)
	GetItems(ctx context.Context, filter *entity.ItemFilter, pg *entity.PaginationInput) ([]entity.Item, error)
	UpdateItemStatusById(ctx context.Context, id string, newStatus string) error
	CountItems(ctx context.Context) (int, error)
	CountItemsByStatus(ctx context.Context, status string) (int, error)
}

// Auction covers the transactional core. Mutating methods take the tx so a
// whole engine operation commits or rolls back as one unit; GetItemForUpdate
// locks the item row for the rest of the transaction.
type Auction interface {
	WithTx(fn func(tx *sql.Tx) error) error

	ListStartableItemIds(ctx context.Context, now time.Time) ([]string, error)
	ListExpiredItemIds(ctx context.Context, now time.Time) ([]string, error)

	GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemId string) (*entity.Item, error)
	GetHighestBid(ctx context.Context, tx *sql.Tx, itemId string) (*entity.Bid, error)

	StartItem(ctx context.Context, tx *sql.Tx, itemId string) error
	EndItem(ctx context.Context, tx *sql.Tx, itemId string, finalPrice *int64) error
	UpdateItemForBid(ctx context.Context, tx *sql.Tx, itemId string, price int64, endsAt time.Time) error

	InsertBid(ctx context.Context, tx *sql.Tx, input *entity.CreateBidInput) (*entity.Bid, error)
	DemoteWinningBids(ctx context.Context, tx *sql.Tx, itemId string, keepBidId uuid.UUID) ([]uuid.UUID, error)
	MarkBidWinning(ctx context.Context, tx *sql.Tx, bidId uuid.UUID) error

	CreateOrder(ctx context.Context, tx *sql.Tx, input *entity.CreateOrderInput) (*entity.Order, error)
}

type Bid interface {
	GetItemBids(ctx context.Context, itemId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetUserBids(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.Bid, error)
}

type Order interface {
	GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	GetUserOrders(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderNumber string, fromStatus, toStatus string, at time.Time) error
	CountOrders(ctx context.Context) (int, error)
	SumOrderTotals(ctx context.Context) (int64, error)
}

type Watchlist interface {
	AddToWatchlist(ctx context.Context, userId, itemId string) error
	RemoveFromWatchlist(ctx context.Context, userId, itemId string) error
	GetUserWatchlist(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Item, error)
	GetWatcherIds(ctx context.Context, itemId string) ([]string, error)
}

type Notification interface {
	CreateNotification(ctx context.Context, input *entity.CreateNotificationInput) error
	GetUserNotifications(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

type AuditLog interface {
	RecordAuditLog(ctx context.Context, input *entity.CreateAuditLogInput) error
}

type Repositories struct {
	Diagnostics
	User
	Item
	Auction
	Bid
	Order
	Watchlist
	Notification
	AuditLog
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics:  pgdb.NewDiagnosticsRepo(p),
		User:         pgdb.NewUserRepo(p),
		Item:         pgdb.NewItemRepo(p),
		Auction:      pgdb.NewAuctionRepo(p),
		Bid:          pgdb.NewBidRepo(p),
		Order:        pgdb.NewOrderRepo(p),
		Watchlist:    pgdb.NewWatchlistRepo(p),
		Notification: pgdb.NewNotificationRepo(p),
		AuditLog:     pgdb.NewAuditLogRepo(p),
	}
}
