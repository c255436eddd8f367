package pgdb

import (
	"context"
	"encoding/json"
	"time"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/postgres"

	"github.com/google/uuid"
)

type NotificationRepo struct {
	*postgres.Postgres
}

func NewNotificationRepo(pgdb *postgres.Postgres) *NotificationRepo {
	return &NotificationRepo{pgdb}
}

func (r *NotificationRepo) CreateNotification(ctx context.Context, input *entity.CreateNotificationInput) error {
	userUuid, err := uuid.Parse(input.UserId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	data, err := json.Marshal(input.Data)
	if err != nil {
		return err
	}

	createReq, args, _ := r.SqlBuilder.
		Insert("notification").
		Columns("user_id", "type", "title", "message", "data").
		Values(userUuid, input.Type, input.Title, input.Message, data).
		ToSql()

	_, err = r.Database.ExecContext(ctx, createReq, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *NotificationRepo) GetUserNotifications(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Notification, error) {
	uuidForm, err := uuid.Parse(userId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	limit, offset := pg.Window()
	getReq, args, _ := r.SqlBuilder.
		Select("id, user_id, type, title, message, data, is_read, created_at").
		From("notification").
		Where("user_id = ?", uuidForm).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		var data []byte
		var createdAt time.Time
		if err := rows.Scan(&n.Id, &n.UserId, &n.Type, &n.Title, &n.Message, &data, &n.IsRead, &createdAt); err != nil {
			return notifications, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return notifications, err
			}
		}
		n.CreatedAt = createdAt.Format(time.RFC3339)
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return notifications, err
	}

	return notifications, nil
}

func (r *NotificationRepo) MarkNotificationRead(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	markReq, args, _ := r.SqlBuilder.
		Update("notification").
		Set("is_read", true).
		Where("id = ?", uuidForm).
		ToSql()

	res, err := r.Database.ExecContext(ctx, markReq, args...)
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
