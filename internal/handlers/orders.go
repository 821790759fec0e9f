package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopcart-backend/internal/config"
	"shopcart-backend/internal/dto"
	"shopcart-backend/internal/models"
	"shopcart-backend/internal/storage"
	"shopcart-backend/internal/utils"
)

// OrdersHandler manages order-related endpoints
type OrdersHandler struct {
	orders storage.OrderStore
	config *config.Config
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(orders storage.OrderStore, cfg *config.Config) *OrdersHandler {
	return &OrdersHandler{orders: orders, config: cfg}
}

// Orders dispatches by HTTP method for /api/order
func (h *OrdersHandler) Orders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateOrder(w, r)
	case http.MethodGet:
		// If path has an ID suffix, treat as detail
		if strings.HasPrefix(r.URL.Path, "/api/order/") && len(r.URL.Path) > len("/api/order/") {
			h.GetOrder(w, r)
			return
		}
		h.ListOrders(w, r)
	case http.MethodDelete:
		h.DeleteOrder(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListOrders handles GET /api/order
// @Summary List orders
// @Description List all orders system-wide; any authenticated caller may read them
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/order [get]
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	// Ensure authorized (context populated by middleware)
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderResponse(o))
	}

	utils.WriteJSONResponse(w, http.StatusOK, items)
}

// GetOrder handles GET /api/order/{id}
// @Summary Get an order
// @Description Fetch one order by id; no ownership filter on reads
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/order/{id} [get]
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	orderID, err := orderIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid order id", "id must be UUID")
		return
	}

	order, err := h.orders.FindOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Order not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, orderResponse(order))
}

// CreateOrder handles POST /api/order
// @Summary Create an order
// @Description Create an order owned by the caller. Only product and amount bind from the body; owner and creation time are server-assigned.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateOrderRequest true "Order payload"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/order [post]
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	// Extract authenticated user id from context
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateOrderRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Product = strings.TrimSpace(req.Product)
	if req.Product == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "product is required")
		return
	}

	// Owner and creation time are never client-supplied.
	order := models.Order{
		ID:           uuid.New(),
		AuthorID:     userID,
		Product:      req.Product,
		Amount:       req.Amount,
		CreationTime: time.Now(),
	}

	created, err := h.orders.CreateOrder(r.Context(), order)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/order/%s", created.ID))
	utils.WriteJSONResponse(w, http.StatusCreated, orderResponse(created))
}

// DeleteOrder handles DELETE /api/order/{id}
// @Summary Delete an order
// @Description Remove an order. Only its owner may delete it; the removed order is returned.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/order/{id} [delete]
func (h *OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	orderID, err := orderIDFromPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid order id", "id must be UUID")
		return
	}

	deleted, err := h.orders.DeleteOrder(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Order not found")
		case errors.Is(err, storage.ErrNotOwner):
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Only the order's owner can delete it")
		default:
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, orderResponse(deleted))
}

func orderIDFromPath(path string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(path, "/api/order/"))
}

func orderResponse(o models.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           o.ID.String(),
		AuthorID:     o.AuthorID.String(),
		Product:      o.Product,
		Amount:       o.Amount,
		CreationTime: o.CreationTime.Format(time.RFC3339),
	}
}
