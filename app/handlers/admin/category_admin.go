package admin

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/handlers"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CategoryAdminHandler struct {
	render     *render.Render
	categories *services.CategoryService
}

func NewCategoryAdminHandler(render *render.Render, categories *services.CategoryService) *CategoryAdminHandler {
	return &CategoryAdminHandler{render: render, categories: categories}
}

func (h *CategoryAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CategoryRequest
	if !handlers.BindJSON(h.render, w, r, &req) {
		return
	}
	category, err := h.categories.CreateCategory(r.Context(), req)
	if err != nil {
		handlers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.CategoryRequest
	if !handlers.BindJSON(h.render, w, r, &req) {
		return
	}
	category, err := h.categories.UpdateCategory(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		handlers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		handlers.WriteError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
