package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HealthHandler struct {
	render *render.Render
	db     *gorm.DB
}

func NewHealthHandler(render *render.Render, db *gorm.DB) *HealthHandler {
	return &HealthHandler{render: render, db: db}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		_ = h.render.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down", "database": err.Error()})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "up"})
}
