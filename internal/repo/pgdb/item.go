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

	"github.com/google/uuid"
)

const itemColumns = "id, seller_id, title, description, species, start_price, current_price, " +
	"buy_now_price, reserve_price, bid_step, starts_at, ends_at, auto_extend_minutes, status, created_at"

type ItemRepo struct {
	*postgres.Postgres
}

func NewItemRepo(pgdb *postgres.Postgres) *ItemRepo {
	return &ItemRepo{pgdb}
}

func (r *ItemRepo) CreateItem(ctx context.Context, input *entity.CreateItemInput) (uuid.UUID, error) {
	sellerUuid, err := uuid.Parse(input.SellerId)
	if err != nil {
		return uuid.Nil, err
	}

	createItemReq, args, _ := r.SqlBuilder.
		Insert("item").
		Columns("seller_id", "title", "description", "species", "start_price", "current_price",
			"buy_now_price", "reserve_price", "bid_step", "starts_at", "ends_at", "auto_extend_minutes", "status").
		Values(sellerUuid, input.Title, input.Description, input.Species, input.StartPrice, 0,
			input.BuyNowPrice, input.ReservePrice, input.BidStep, input.StartsAt, input.EndsAt,
			input.AutoExtendMinutes, common.PendingReview).
		Suffix("RETURNING id").
		ToSql()

	var itemId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createItemReq, args...).Scan(&itemId)
	if err != nil {
		return uuid.Nil, err
	}

	return itemId, nil
}

func (r *ItemRepo) GetItemById(ctx context.Context, id string) (*entity.Item, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getItemReq, args, _ := r.SqlBuilder.
		Select(itemColumns).
		From("item").
		Where("id = ?", uuidForm).
		ToSql()

	row := r.Database.QueryRowContext(ctx, getItemReq, args...)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return item, nil
}

func (r *ItemRepo) GetItems(ctx context.Context, filter *entity.ItemFilter, pg *entity.PaginationInput) ([]entity.Item, error) {
	q := r.SqlBuilder.
		Select(itemColumns).
		From("item")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Species != "" {
		q = q.Where("species ILIKE ?", "%"+filter.Species+"%")
	}
	if filter.MinPrice != nil {
		q = q.Where("current_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("current_price <= ?", *filter.MaxPrice)
	}

	switch filter.Sort {
	case "price_asc":
		q = q.OrderBy("current_price ASC")
	case "price_desc":
		q = q.OrderBy("current_price DESC")
	case "ending_soon":
		q = q.OrderBy("ends_at ASC")
	default:
		q = q.OrderBy("created_at DESC")
	}

	limit, offset := pg.Window()
	getItemsReq, args, _ := q.Offset(offset).Limit(limit).ToSql()

	rows, err := r.Database.QueryContext(ctx, getItemsReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return items, err
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

func (r *ItemRepo) UpdateItemStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateStatusReq, args, _ := r.SqlBuilder.
		Update("item").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		ToSql()

	res, err := r.Database.ExecContext(ctx, updateStatusReq, args...)
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

func (r *ItemRepo) CountItems(ctx context.Context) (int, error) {
	return r.countItems(ctx, "")
}

func (r *ItemRepo) CountItemsByStatus(ctx context.Context, status string) (int, error) {
	return r.countItems(ctx, status)
}

func (r *ItemRepo) countItems(ctx context.Context, status string) (int, error) {
	q := r.SqlBuilder.
		Select("count(*)").
		From("item")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	countReq, args, _ := q.ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countReq, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var item entity.Item
	var buyNowPrice, reservePrice sql.NullInt64
	var createdAt time.Time

	err := row.Scan(&item.Id, &item.SellerId, &item.Title, &item.Description, &item.Species,
		&item.StartPrice, &item.CurrentPrice, &buyNowPrice, &reservePrice, &item.BidStep,
		&item.StartsAt, &item.EndsAt, &item.AutoExtendMinutes, &item.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	if buyNowPrice.Valid {
		item.BuyNowPrice = &buyNowPrice.Int64
	}
	if reservePrice.Valid {
		item.ReservePrice = &reservePrice.Int64
	}
	item.CreatedAt = createdAt.Format(time.RFC3339)

	return &item, nil
}
