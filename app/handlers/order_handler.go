package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render *render.Render
	orders *services.OrderService
}

func NewOrderHandler(render *render.Render, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{render: render, orders: orders}
}

func (h *OrderHandler) respond(w http.ResponseWriter, r *http.Request, body interface{}, err error) {
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, body)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePageRequest(r, repositories.DefaultPageSize)
	orders, err := h.orders.ListOrders(r.Context(), caller(r), page)
	h.respond(w, r, orders, err)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), caller(r), mux.Vars(r)["orderId"])
	h.respond(w, r, order, err)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.CancelOrder(r.Context(), caller(r), mux.Vars(r)["orderId"])
	h.respond(w, r, order, err)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		JSONError(h.render, w, http.StatusBadRequest, CodeInvalidRequest, "status is required")
		return
	}
	order, err := h.orders.UpdateOrderStatus(r.Context(), mux.Vars(r)["orderId"], status)
	h.respond(w, r, order, err)
}
