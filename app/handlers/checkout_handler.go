package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/unrolled/render"
)

type CreateOrderRequest struct {
	ShippingAddress map[string]string `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
}

type CheckoutHandler struct {
	render   *render.Render
	checkout *services.CheckoutService
}

func NewCheckoutHandler(render *render.Render, checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{render: render, checkout: checkout}
}

func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !BindOptionalJSON(h.render, w, r, &req) {
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), caller(r), services.PlaceOrderRequest{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}
