package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/postgres"

	"github.com/google/uuid"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

func (r *UserRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getUserReq, args, _ := r.SqlBuilder.
		Select("id, name, role, created_at").
		From("users").
		Where("id = ?", uuidForm).
		ToSql()

	var user entity.User
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getUserReq, args...)
	err = row.Scan(&user.Id, &user.Name, &user.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)

	return &user, nil
}

func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	countReq, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("users").
		ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countReq, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
