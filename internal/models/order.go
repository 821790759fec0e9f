package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a purchase record. AuthorID is fixed at creation and never
// reassigned; CreationTime is always set server-side.
type Order struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AuthorID     uuid.UUID `json:"author_id" db:"author_id"`
	Product      string    `json:"product" db:"product"`
	Amount       int       `json:"amount" db:"amount"`
	CreationTime time.Time `json:"creation_time" db:"creation_time"`
}
