package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shopcart-backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrNotOwner indicates the caller does not own the record it tried to mutate.
var ErrNotOwner = errors.New("caller is not the record owner")

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// OrderStore captures order persistence operations. DeleteOrder enforces
// ownership: the order is removed only when callerID matches the stored
// author, atomically with respect to concurrent deletes of the same id.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	FindOrder(ctx context.Context, id uuid.UUID) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id, callerID uuid.UUID) (models.Order, error)
}
