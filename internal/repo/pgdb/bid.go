package pgdb

import (
	"context"
	"database/sql"
	"time"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/postgres"

	"github.com/google/uuid"
)

const bidColumns = "id, item_id, bidder_id, amount, is_proxy, max_proxy_amount, is_winning, created_at"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) GetItemBids(ctx context.Context, itemId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getBids(ctx, "item_id = ?", uuidForm, pg)
}

func (r *BidRepo) GetUserBids(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(bidderId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getBids(ctx, "bidder_id = ?", uuidForm, pg)
}

func (r *BidRepo) getBids(ctx context.Context, pred string, arg uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	limit, offset := pg.Window()
	getBidsReq, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where(pred, arg).
		OrderBy("amount DESC").
		Offset(offset).
		Limit(limit).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getBidsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func scanBid(row rowScanner) (*entity.Bid, error) {
	var bid entity.Bid
	var maxProxyAmount sql.NullInt64
	var createdAt time.Time

	err := row.Scan(&bid.Id, &bid.ItemId, &bid.BidderId, &bid.Amount,
		&bid.IsProxy, &maxProxyAmount, &bid.IsWinning, &createdAt)
	if err != nil {
		return nil, err
	}

	if maxProxyAmount.Valid {
		bid.MaxProxyAmount = &maxProxyAmount.Int64
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}
