package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render *render.Render
	auth   *services.AuthService
}

func NewAuthHandler(render *render.Render, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{render: render, auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if !BindJSON(h.render, w, r, &req) {
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if !BindJSON(h.render, w, r, &req) {
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}
