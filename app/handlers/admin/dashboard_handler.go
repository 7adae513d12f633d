package admin

import (
	"net/http"

	"github.com/Rakhulsr/wishcrate/app/handlers"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/unrolled/render"
)

type DashboardHandler struct {
	render *render.Render
	admin  *services.AdminService
}

func NewDashboardHandler(render *render.Render, admin *services.AdminService) *DashboardHandler {
	return &DashboardHandler{render: render, admin: admin}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		handlers.WriteError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, stats)
}
