package entity

import "github.com/google/uuid"

// db model; one row per admin decision on a listing
type AuditLog struct {
	Id         uuid.UUID      `json:"id" db:"id"`
	ActorId    uuid.UUID      `json:"actorId" db:"actor_id"`
	Action     string         `json:"action" db:"action"`
	TargetType string         `json:"targetType" db:"target_type"`
	TargetId   uuid.UUID      `json:"targetId" db:"target_id"`
	Diff       map[string]any `json:"diff" db:"diff"`
	CreatedAt  string         `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateAuditLogInput struct {
	ActorId    string // given
	Action     string // given
	TargetType string // given
	TargetId   string // given
	Diff       map[string]any
	// Id UUID sets automatically
	// CreatedAt sets automatically
}
