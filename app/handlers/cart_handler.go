package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CartHandler struct {
	render *render.Render
	carts  *services.CartService
}

func NewCartHandler(render *render.Render, carts *services.CartService) *CartHandler {
	return &CartHandler{render: render, carts: carts}
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, cart *services.CartDTO, err error) {
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), caller(r))
	h.respond(w, r, cart, err)
}

// AddToCart takes productId and quantity from the query string, or from a JSON
// body when the query carries no productId.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := AddToCartRequest{ProductID: r.URL.Query().Get("productId"), Quantity: 1}

	if req.ProductID != "" {
		if r.URL.Query().Has("quantity") {
			qty, ok := queryInt(r, "quantity")
			if !ok {
				JSONError(h.render, w, http.StatusBadRequest, CodeInvalidRequest, "quantity must be an integer")
				return
			}
			req.Quantity = qty
		}
	} else if !BindJSON(h.render, w, r, &req) {
		return
	}

	cart, err := h.carts.AddToCart(r.Context(), caller(r), req.ProductID, req.Quantity)
	h.respond(w, r, cart, err)
}

func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	qty, ok := queryInt(r, "quantity")
	if !ok {
		JSONError(h.render, w, http.StatusBadRequest, CodeInvalidRequest, "quantity must be an integer")
		return
	}
	cart, err := h.carts.UpdateCartItem(r.Context(), caller(r), mux.Vars(r)["cartItemId"], qty)
	h.respond(w, r, cart, err)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.RemoveFromCart(r.Context(), caller(r), mux.Vars(r)["cartItemId"])
	h.respond(w, r, cart, err)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.ClearCart(r.Context(), caller(r))
	h.respond(w, r, cart, err)
}
