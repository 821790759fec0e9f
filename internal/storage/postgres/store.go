package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopcart-backend/internal/config"
	"shopcart-backend/internal/models"
	"shopcart-backend/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore  = (*Store)(nil)
	_ storage.OrderStore = (*Store)(nil)
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users and orders.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres, applies pending migrations, and returns a Store.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	dsn := cfg.GetDSN()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "shopcart-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := RunMigrations(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping reports database connectivity, used by readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateUser inserts a new user row. A duplicate email yields ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, username, password_hash, created_at, updated_at`

	row := s.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users WHERE email = $1`

	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by id.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users WHERE id = $1`

	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// CreateOrder inserts a new order row.
func (s *Store) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const query = `
		INSERT INTO orders (id, author_id, product, amount, creation_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, author_id, product, amount, creation_time`

	row := s.pool.QueryRow(ctx, query,
		order.ID, order.AuthorID, order.Product, order.Amount, order.CreationTime)
	return scanOrder(row)
}

// FindOrder fetches an order by id.
func (s *Store) FindOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	const query = `
		SELECT id, author_id, product, amount, creation_time
		FROM orders WHERE id = $1`

	return scanOrder(s.pool.QueryRow(ctx, query, id))
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	const query = `
		SELECT id, author_id, product, amount, creation_time
		FROM orders ORDER BY creation_time DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.AuthorID, &o.Product, &o.Amount, &o.CreationTime); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// DeleteOrder removes the order with the given id if callerID owns it,
// returning the removed row. The check and the delete run in one
// transaction with the row locked, so a concurrent delete of the same id
// observes ErrNotFound rather than succeeding twice.
func (s *Store) DeleteOrder(ctx context.Context, id, callerID uuid.UUID) (models.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, err
	}
	defer tx.Rollback(ctx)

	const selectQuery = `
		SELECT id, author_id, product, amount, creation_time
		FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, selectQuery, id))
	if err != nil {
		return models.Order{}, err
	}

	if order.AuthorID != callerID {
		return models.Order{}, storage.ErrNotOwner
	}

	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return models.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var order models.Order
	err := row.Scan(&order.ID, &order.AuthorID, &order.Product, &order.Amount, &order.CreationTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, storage.ErrNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}
