package pgdb

import (
	"context"
	"errors"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type WatchlistRepo struct {
	*postgres.Postgres
}

func NewWatchlistRepo(pgdb *postgres.Postgres) *WatchlistRepo {
	return &WatchlistRepo{pgdb}
}

func (r *WatchlistRepo) AddToWatchlist(ctx context.Context, userId, itemId string) error {
	userUuid, err := uuid.Parse(userId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	itemUuid, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	addReq, args, _ := r.SqlBuilder.
		Insert("watchlist").
		Columns("user_id", "item_id").
		Values(userUuid, itemUuid).
		ToSql()

	_, err = r.Database.ExecContext(ctx, addReq, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repo_errors.ErrAlreadyExists
		}

		return err
	}

	return nil
}

func (r *WatchlistRepo) RemoveFromWatchlist(ctx context.Context, userId, itemId string) error {
	userUuid, err := uuid.Parse(userId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	itemUuid, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	removeReq, args, _ := r.SqlBuilder.
		Delete("watchlist").
		Where("user_id = ?", userUuid).
		Where("item_id = ?", itemUuid).
		ToSql()

	res, err := r.Database.ExecContext(ctx, removeReq, args...)
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

func (r *WatchlistRepo) GetUserWatchlist(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Item, error) {
	uuidForm, err := uuid.Parse(userId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	limit, offset := pg.Window()
	getWatchlistReq, args, _ := r.SqlBuilder.
		Select("item.id, item.seller_id, item.title, item.description, item.species, item.start_price, "+
			"item.current_price, item.buy_now_price, item.reserve_price, item.bid_step, item.starts_at, "+
			"item.ends_at, item.auto_extend_minutes, item.status, item.created_at").
		From("watchlist").
		InnerJoin("item on item.id = watchlist.item_id").
		Where("watchlist.user_id = ?", uuidForm).
		OrderBy("watchlist.created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getWatchlistReq, args...)
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

func (r *WatchlistRepo) GetWatcherIds(ctx context.Context, itemId string) ([]string, error) {
	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getWatchersReq, args, _ := r.SqlBuilder.
		Select("user_id").
		From("watchlist").
		Where("item_id = ?", uuidForm).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getWatchersReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	watchers := make([]string, 0)
	for rows.Next() {
		var userId uuid.UUID
		if err := rows.Scan(&userId); err != nil {
			return watchers, err
		}
		watchers = append(watchers, userId.String())
	}
	if err = rows.Err(); err != nil {
		return watchers, err
	}

	return watchers, nil
}
