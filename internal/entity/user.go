package entity

import "github.com/google/uuid"

// db model; sessions and credentials live outside this service,
// the row only anchors ownership and the admin role check
type User struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}
