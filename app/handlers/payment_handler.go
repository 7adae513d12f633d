package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type PaymentHandler struct {
	render   *render.Render
	payments *services.PaymentService
}

func NewPaymentHandler(render *render.Render, payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{render: render, payments: payments}
}

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.InitiatePayment(r.Context(), caller(r), mux.Vars(r)["orderId"])
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, payment)
}

// Notification receives the gateway's asynchronous status callback.
func (h *PaymentHandler) Notification(w http.ResponseWriter, r *http.Request) {
	var payload services.NotificationPayload
	if !BindJSON(h.render, w, r, &payload) {
		return
	}

	result, err := h.payments.HandleNotification(r.Context(), payload)
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, result)
}
