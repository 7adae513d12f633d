package handlers

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render   *render.Render
	products *services.ProductService
}

func NewProductHandler(render *render.Render, products *services.ProductService) *ProductHandler {
	return &ProductHandler{render: render, products: products}
}

func (h *ProductHandler) respond(w http.ResponseWriter, r *http.Request, status int, body interface{}, err error) {
	if err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, status, body)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePageRequest(r, services.DefaultProductPageSize)
	result, err := h.products.ListProducts(r.Context(), page)
	h.respond(w, r, http.StatusOK, result, err)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, product, err)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePageRequest(r, services.DefaultProductPageSize)
	result, err := h.products.SearchProducts(r.Context(), r.URL.Query().Get("keyword"), page)
	h.respond(w, r, http.StatusOK, result, err)
}

func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePageRequest(r, services.DefaultProductPageSize)
	result, err := h.products.ProductsByCategory(r.Context(), mux.Vars(r)["categoryId"], page)
	h.respond(w, r, http.StatusOK, result, err)
}

func (h *ProductHandler) ByPriceRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minPrice, err := decimal.NewFromString(q.Get("minPrice"))
	if err != nil {
		JSONError(h.render, w, http.StatusBadRequest, CodeInvalidRequest, "minPrice must be a number")
		return
	}
	maxPrice, err := decimal.NewFromString(q.Get("maxPrice"))
	if err != nil {
		JSONError(h.render, w, http.StatusBadRequest, CodeInvalidRequest, "maxPrice must be a number")
		return
	}

	page := helpers.ParsePageRequest(r, services.DefaultProductPageSize)
	result, err := h.products.ProductsByPriceRange(r.Context(), minPrice, maxPrice, page)
	h.respond(w, r, http.StatusOK, result, err)
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePageRequest(r, services.DefaultProductPageSize)
	result, err := h.products.FeaturedProducts(r.Context(), page)
	h.respond(w, r, http.StatusOK, result, err)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ProductRequest
	if !BindJSON(h.render, w, r, &req) {
		return
	}
	product, err := h.products.CreateProduct(r.Context(), caller(r), req)
	h.respond(w, r, http.StatusCreated, product, err)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.ProductRequest
	if !BindJSON(h.render, w, r, &req) {
		return
	}
	product, err := h.products.UpdateProduct(r.Context(), caller(r), mux.Vars(r)["id"], req)
	h.respond(w, r, http.StatusOK, product, err)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), caller(r), mux.Vars(r)["id"]); err != nil {
		WriteError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
