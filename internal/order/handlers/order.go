package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tableside/internal/common/httpx"
	"tableside/internal/domain"
	"tableside/internal/order/service"
)

type OrderHandler struct {
	service service.Interface
}

func NewOrderHandler(s service.Interface) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")

	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	o, err := h.service.Create(r.Context(), restaurantID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, domain.CreateOrderResponse{
		OrderID:  o.ID,
		Status:   string(o.Status),
		Subtotal: o.Subtotal,
	})
}

func (h *OrderHandler) CallStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")

	var req domain.CallStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	o, err := h.service.CallStaff(r.Context(), restaurantID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, domain.CreateOrderResponse{
		OrderID:  o.ID,
		Status:   string(o.Status),
		Subtotal: o.Subtotal,
	})
}

func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req domain.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if err := h.service.Transition(r.Context(), orderID, req.Status); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "status": req.Status})
}

// List is the read path dashboards hit on connect and reconnect, before
// subscribing to the live channel.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")

	orders, err := h.service.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}
