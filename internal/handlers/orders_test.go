package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"shopcart-backend/internal/dto"
	"shopcart-backend/internal/models"
	"shopcart-backend/internal/utils"
)

// authedRequest builds a request whose context already carries a resolved
// identity, as the JWT middleware would have left it.
func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := utils.NewUserContext(req.Context(), userID, "caller@x.com")
	return req.WithContext(ctx)
}

func decodeOrder(t *testing.T, body string) dto.OrderResponse {
	t.Helper()
	var resp dto.OrderResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestCreateOrder_OwnerAndTimeAreServerAssigned(t *testing.T) {
	store := newFakeOrderStore()
	h := NewOrdersHandler(store, testConfig())
	caller := uuid.New()
	before := time.Now().Truncate(time.Second)

	// Client-supplied owner and timestamp fields must be ignored: only
	// product and amount bind.
	body := `{"product":"Book","amount":2,` +
		`"author_id":"11111111-1111-1111-1111-111111111111",` +
		`"creation_time":"1999-01-01T00:00:00Z"}`
	rec := httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodPost, "/api/order", body, caller))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeOrder(t, rec.Body.String())
	require.Equal(t, caller.String(), created.AuthorID)
	require.Equal(t, "Book", created.Product)
	require.Equal(t, 2, created.Amount)
	require.Equal(t, "/api/order/"+created.ID, rec.Header().Get("Location"))

	creationTime, err := time.Parse(time.RFC3339, created.CreationTime)
	require.NoError(t, err)
	require.False(t, creationTime.Before(before), "creation time must not predate the request")
}

func TestCreateOrder_MissingProduct(t *testing.T) {
	h := NewOrdersHandler(newFakeOrderStore(), testConfig())
	rec := httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodPost, "/api/order", `{"amount":2}`, uuid.New()))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder(t *testing.T) {
	store := newFakeOrderStore()
	h := NewOrdersHandler(store, testConfig())
	owner := uuid.New()
	order := models.Order{ID: uuid.New(), AuthorID: owner, Product: "Book", Amount: 1, CreationTime: time.Now()}
	_, err := store.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	t.Run("reads are not owner-scoped", func(t *testing.T) {
		stranger := uuid.New()
		rec := httptest.NewRecorder()
		h.Orders(rec, authedRequest(http.MethodGet, "/api/order/"+order.ID.String(), "", stranger))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, order.ID.String(), decodeOrder(t, rec.Body.String()).ID)
	})

	t.Run("absent id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Orders(rec, authedRequest(http.MethodGet, "/api/order/"+uuid.New().String(), "", owner))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-uuid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Orders(rec, authedRequest(http.MethodGet, "/api/order/42", "", owner))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListOrders_ReturnsAllUsersOrders(t *testing.T) {
	store := newFakeOrderStore()
	h := NewOrdersHandler(store, testConfig())

	for range 3 {
		_, err := store.CreateOrder(context.Background(), models.Order{
			ID: uuid.New(), AuthorID: uuid.New(), Product: "Book", Amount: 1, CreationTime: time.Now(),
		})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodGet, "/api/order", "", uuid.New()))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 3)
}

func TestDeleteOrder_OwnershipAndIdempotence(t *testing.T) {
	store := newFakeOrderStore()
	h := NewOrdersHandler(store, testConfig())
	owner := uuid.New()
	stranger := uuid.New()

	order := models.Order{ID: uuid.New(), AuthorID: owner, Product: "Book", Amount: 2, CreationTime: time.Now()}
	_, err := store.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	target := "/api/order/" + order.ID.String()

	// A valid, authenticated non-owner gets 401 and the row survives.
	rec := httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodDelete, target, "", stranger))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodGet, target, "", stranger))
	require.Equal(t, http.StatusOK, rec.Code, "order must remain after a rejected delete")

	// The owner's delete succeeds and returns the removed record.
	rec = httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodDelete, target, "", owner))
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decodeOrder(t, rec.Body.String())
	require.Equal(t, order.ID.String(), deleted.ID)
	require.Equal(t, owner.String(), deleted.AuthorID)

	// Repeating the delete observes NotFound, not a second success.
	rec = httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodDelete, target, "", owner))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
