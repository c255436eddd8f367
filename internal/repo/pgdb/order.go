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

const orderColumns = "id, order_number, item_id, buyer_id, final_price, buyer_premium, " +
	"seller_fee, total_amount, payment_status, paid_at, canceled_at, created_at"

type OrderRepo struct {
	*postgres.Postgres
}

func NewOrderRepo(pgdb *postgres.Postgres) *OrderRepo {
	return &OrderRepo{pgdb}
}

func (r *OrderRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	getOrderReq, args, _ := r.SqlBuilder.
		Select(orderColumns).
		From("app_order").
		Where("order_number = ?", orderNumber).
		ToSql()

	row := r.Database.QueryRowContext(ctx, getOrderReq, args...)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return order, nil
}

func (r *OrderRepo) GetUserOrders(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.Order, error) {
	uuidForm, err := uuid.Parse(buyerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	limit, offset := pg.Window()
	getOrdersReq, args, _ := r.SqlBuilder.
		Select(orderColumns).
		From("app_order").
		Where("buyer_id = ?", uuidForm).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getOrdersReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return orders, err
		}
		orders = append(orders, *order)
	}
	if err = rows.Err(); err != nil {
		return orders, err
	}

	return orders, nil
}

// UpdatePaymentStatus transitions an order between payment states. The from
// predicate makes the call a no-op (ErrNotFound) when the order already left
// the expected state, so it never double-applies.
func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, orderNumber string, fromStatus, toStatus string, at time.Time) error {
	q := r.SqlBuilder.
		Update("app_order").
		Set("payment_status", toStatus).
		Where("order_number = ?", orderNumber).
		Where("payment_status = ?", fromStatus)

	switch toStatus {
	case common.PaymentPaid:
		q = q.Set("paid_at", at)
	case common.PaymentCanceled:
		q = q.Set("canceled_at", at)
	}

	updateReq, args, _ := q.ToSql()

	res, err := r.Database.ExecContext(ctx, updateReq, args...)
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

func (r *OrderRepo) CountOrders(ctx context.Context) (int, error) {
	countReq, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("app_order").
		ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countReq, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepo) SumOrderTotals(ctx context.Context) (int64, error) {
	sumReq, args, _ := r.SqlBuilder.
		Select("coalesce(sum(total_amount), 0)").
		From("app_order").
		ToSql()

	var total int64
	if err := r.Database.QueryRowContext(ctx, sumReq, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var order entity.Order
	var paidAt, canceledAt sql.NullTime
	var createdAt time.Time

	err := row.Scan(&order.Id, &order.OrderNumber, &order.ItemId, &order.BuyerId,
		&order.FinalPrice, &order.BuyerPremium, &order.SellerFee, &order.TotalAmount,
		&order.PaymentStatus, &paidAt, &canceledAt, &createdAt)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		formatted := paidAt.Time.Format(time.RFC3339)
		order.PaidAt = &formatted
	}
	if canceledAt.Valid {
		formatted := canceledAt.Time.Format(time.RFC3339)
		order.CanceledAt = &formatted
	}
	order.CreatedAt = createdAt.Format(time.RFC3339)

	return &order, nil
}
