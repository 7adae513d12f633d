package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type AddressHandler struct {
	render    *render.Render
	addresses *services.AddressService
}

func NewAddressHandler(render *render.Render, addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{render: render, addresses: addresses}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.ListAddresses(r.Context(), caller(r))
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.AddressRequest
	if !BindJSON(h.render, w, r, &req) {
		return
	}

	address, err := h.addresses.CreateAddress(r.Context(), caller(r), req)
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.addresses.DeleteAddress(r.Context(), caller(r), mux.Vars(r)["id"]); err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
