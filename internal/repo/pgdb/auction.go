package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AuctionRepo struct {
	*postgres.Postgres
}

func NewAuctionRepo(pgdb *postgres.Postgres) *AuctionRepo {
	return &AuctionRepo{pgdb}
}

func (r *AuctionRepo) WithTx(fn func(tx *sql.Tx) error) error {
	return r.Postgres.WithTx(fn)
}

func (r *AuctionRepo) ListStartableItemIds(ctx context.Context, now time.Time) ([]string, error) {
	return r.listItemIds(ctx, common.Scheduled, "starts_at <= ?", now)
}

func (r *AuctionRepo) ListExpiredItemIds(ctx context.Context, now time.Time) ([]string, error) {
	return r.listItemIds(ctx, common.Live, "ends_at <= ?", now)
}

func (r *AuctionRepo) listItemIds(ctx context.Context, status string, timePred string, now time.Time) ([]string, error) {
	listReq, args, _ := r.SqlBuilder.
		Select("id").
		From("item").
		Where("status = ?", status).
		Where(timePred, now).
		OrderBy("ends_at ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return ids, err
		}
		ids = append(ids, id.String())
	}
	if err = rows.Err(); err != nil {
		return ids, err
	}

	return ids, nil
}

// GetItemForUpdate reads the item under a row lock. The lock is held until the
// surrounding transaction commits, serializing bid, buy-now and sweep work on
// the same item.
func (r *AuctionRepo) GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemId string) (*entity.Item, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getItemReq, args, _ := r.SqlBuilder.
		Select(itemColumns).
		From("item").
		Where("id = ?", uuidForm).
		Suffix("FOR UPDATE").
		ToSql()

	row := tx.QueryRowContext(ctx, getItemReq, args...)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return item, nil
}

// GetHighestBid returns nil without error when the item has no bids.
func (r *AuctionRepo) GetHighestBid(ctx context.Context, tx *sql.Tx, itemId string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidReq, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("item_id = ?", uuidForm).
		OrderBy("amount DESC").
		Limit(1).
		ToSql()

	row := tx.QueryRowContext(ctx, getBidReq, args...)
	bid, err := scanBid(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return bid, nil
}

func (r *AuctionRepo) StartItem(ctx context.Context, tx *sql.Tx, itemId string) error {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	startItemReq, args, _ := r.SqlBuilder.
		Update("item").
		Set("status", common.Live).
		Set("current_price", squirrel.Expr("start_price")).
		Where("id = ?", uuidForm).
		Where("status = ?", common.Scheduled).
		ToSql()

	res, err := tx.ExecContext(ctx, startItemReq, args...)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// EndItem moves the item to ENDED. A non-nil finalPrice also stamps the
// current price, which buy-now needs since no prior bid set it.
func (r *AuctionRepo) EndItem(ctx context.Context, tx *sql.Tx, itemId string, finalPrice *int64) error {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	q := r.SqlBuilder.
		Update("item").
		Set("status", common.Ended).
		Where("id = ?", uuidForm).
		Where("status = ?", common.Live)
	if finalPrice != nil {
		q = q.Set("current_price", *finalPrice)
	}

	endItemReq, args, _ := q.ToSql()

	res, err := tx.ExecContext(ctx, endItemReq, args...)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *AuctionRepo) UpdateItemForBid(ctx context.Context, tx *sql.Tx, itemId string, price int64, endsAt time.Time) error {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateItemReq, args, _ := r.SqlBuilder.
		Update("item").
		Set("current_price", price).
		Set("ends_at", endsAt).
		Where("id = ?", uuidForm).
		ToSql()

	_, err = tx.ExecContext(ctx, updateItemReq, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *AuctionRepo) InsertBid(ctx context.Context, tx *sql.Tx, input *entity.CreateBidInput) (*entity.Bid, error) {
	itemUuid, err := uuid.Parse(input.ItemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	bidderUuid, err := uuid.Parse(input.BidderId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	insertBidReq, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("item_id", "bidder_id", "amount", "is_proxy", "max_proxy_amount", "is_winning").
		Values(itemUuid, bidderUuid, input.Amount, input.IsProxy, input.MaxProxyAmount, input.IsWinning).
		Suffix("RETURNING id, created_at").
		ToSql()

	bid := entity.Bid{
		ItemId:         itemUuid,
		BidderId:       bidderUuid,
		Amount:         input.Amount,
		IsProxy:        input.IsProxy,
		MaxProxyAmount: input.MaxProxyAmount,
		IsWinning:      input.IsWinning,
	}

	var createdAt time.Time
	if err := tx.QueryRowContext(ctx, insertBidReq, args...).Scan(&bid.Id, &createdAt); err != nil {
		return nil, err
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

// DemoteWinningBids clears is_winning on every bid of the item except the new
// holder and returns the bidder ids that lost the flag, so the service can
// send outbid notifications.
func (r *AuctionRepo) DemoteWinningBids(ctx context.Context, tx *sql.Tx, itemId string, keepBidId uuid.UUID) ([]uuid.UUID, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	demoteReq, args, _ := r.SqlBuilder.
		Update("bid").
		Set("is_winning", false).
		Where("item_id = ?", uuidForm).
		Where("is_winning = ?", true).
		Where("id <> ?", keepBidId).
		Suffix("RETURNING bidder_id").
		ToSql()

	rows, err := tx.QueryContext(ctx, demoteReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	demoted := make([]uuid.UUID, 0, 1)
	for rows.Next() {
		var bidderId uuid.UUID
		if err := rows.Scan(&bidderId); err != nil {
			return demoted, err
		}
		demoted = append(demoted, bidderId)
	}
	if err = rows.Err(); err != nil {
		return demoted, err
	}

	return demoted, nil
}

func (r *AuctionRepo) MarkBidWinning(ctx context.Context, tx *sql.Tx, bidId uuid.UUID) error {
	markReq, args, _ := r.SqlBuilder.
		Update("bid").
		Set("is_winning", true).
		Where("id = ?", bidId).
		ToSql()

	_, err := tx.ExecContext(ctx, markReq, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *AuctionRepo) CreateOrder(ctx context.Context, tx *sql.Tx, input *entity.CreateOrderInput) (*entity.Order, error) {
	itemUuid, err := uuid.Parse(input.ItemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	buyerUuid, err := uuid.Parse(input.BuyerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	createOrderReq, args, _ := r.SqlBuilder.
		Insert("app_order").
		Columns("order_number", "item_id", "buyer_id", "final_price", "buyer_premium",
			"seller_fee", "total_amount", "payment_status").
		Values(input.OrderNumber, itemUuid, buyerUuid, input.FinalPrice, input.BuyerPremium,
			input.SellerFee, input.TotalAmount, common.PaymentPending).
		Suffix("RETURNING id, created_at").
		ToSql()

	order := entity.Order{
		OrderNumber:   input.OrderNumber,
		ItemId:        itemUuid,
		BuyerId:       buyerUuid,
		FinalPrice:    input.FinalPrice,
		BuyerPremium:  input.BuyerPremium,
		SellerFee:     input.SellerFee,
		TotalAmount:   input.TotalAmount,
		PaymentStatus: common.PaymentPending,
	}

	var createdAt time.Time
	if err := tx.QueryRowContext(ctx, createOrderReq, args...).Scan(&order.Id, &createdAt); err != nil {
		return nil, err
	}
	order.CreatedAt = createdAt.Format(time.RFC3339)

	return &order, nil
}
