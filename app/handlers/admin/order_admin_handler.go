package admin

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/handlers"
	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/unrolled/render"
)

type OrderAdminHandler struct {
	render *render.Render
	orders *services.OrderService
}

func NewOrderAdminHandler(render *render.Render, orders *services.OrderService) *OrderAdminHandler {
	return &OrderAdminHandler{render: render, orders: orders}
}

// ListOrders lists every customer's orders, optionally filtered by ?status=.
func (h *OrderAdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePageRequest(r, repositories.DefaultPageSize)
	orders, err := h.orders.ListAllOrders(r.Context(), r.URL.Query().Get("status"), page)
	if err != nil {
		handlers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}
