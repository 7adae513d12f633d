package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	render   *render.Render
	wishlist *services.WishlistService
}

func NewWishlistHandler(render *render.Render, wishlist *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{render: render, wishlist: wishlist}
}

func (h *WishlistHandler) respond(w http.ResponseWriter, r *http.Request, products []services.ProductDTO, err error) {
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlist.ListWishlist(r.Context(), caller(r))
	h.respond(w, r, products, err)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlist.AddToWishlist(r.Context(), caller(r), mux.Vars(r)["productId"])
	h.respond(w, r, products, err)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlist.RemoveFromWishlist(r.Context(), caller(r), mux.Vars(r)["productId"])
	h.respond(w, r, products, err)
}
