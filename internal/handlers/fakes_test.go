package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shopcart-backend/internal/models"
	"shopcart-backend/internal/storage"
)

// In-memory stands-ins for the storage interfaces, mirroring the postgres
// store's error contract.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return models.User{}, storage.ErrNotFound
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[uuid.UUID]models.Order)}
}

func (s *fakeOrderStore) CreateOrder(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return order, nil
}

func (s *fakeOrderStore) FindOrder(_ context.Context, id uuid.UUID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return models.Order{}, storage.ErrNotFound
}

func (s *fakeOrderStore) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *fakeOrderStore) DeleteOrder(_ context.Context, id, callerID uuid.UUID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, storage.ErrNotFound
	}
	if order.AuthorID != callerID {
		return models.Order{}, storage.ErrNotOwner
	}
	delete(s.orders, id)
	return order, nil
}
