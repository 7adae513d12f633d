package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CategoryHandler struct {
	render     *render.Render
	categories *services.CategoryService
}

func NewCategoryHandler(render *render.Render, categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{render: render, categories: categories}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}
