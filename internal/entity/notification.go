package entity

import (
	"github.com/google/uuid"
)

// db model; Data is an opaque json document addressed to the UI
type Notification struct {
	Id        uuid.UUID      `json:"id" db:"id"`
	UserId    uuid.UUID      `json:"userId" db:"user_id"`
	Type      string         `json:"type" db:"type"`
	Title     string         `json:"title" db:"title"`
	Message   string         `json:"message" db:"message"`
	Data      map[string]any `json:"data" db:"data"`
	IsRead    bool           `json:"isRead" db:"is_read"`
	CreatedAt string         `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateNotificationInput struct {
	UserId  string // given
	Type    string // given
	Title   string // given
	Message string // given
	Data    map[string]any
	// Id UUID sets automatically
	// IsRead starts false
	// CreatedAt sets automatically
}

// controller model
type NotificationOutputModel struct {
	Id        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"isRead"`
	CreatedAt string         `json:"createdAt"`
}
