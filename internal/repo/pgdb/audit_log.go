package pgdb

import (
	"context"
	"encoding/json"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/postgres"

	"github.com/google/uuid"
)

type AuditLogRepo struct {
	*postgres.Postgres
}

func NewAuditLogRepo(pgdb *postgres.Postgres) *AuditLogRepo {
	return &AuditLogRepo{pgdb}
}

func (r *AuditLogRepo) RecordAuditLog(ctx context.Context, input *entity.CreateAuditLogInput) error {
	actorUuid, err := uuid.Parse(input.ActorId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	targetUuid, err := uuid.Parse(input.TargetId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	diff, err := json.Marshal(input.Diff)
	if err != nil {
		return err
	}

	recordReq, args, _ := r.SqlBuilder.
		Insert("audit_log").
		Columns("actor_id", "action", "target_type", "target_id", "diff").
		Values(actorUuid, input.Action, input.TargetType, targetUuid, diff).
		ToSql()

	_, err = r.Database.ExecContext(ctx, recordReq, args...)
	if err != nil {
		return err
	}

	return nil
}
