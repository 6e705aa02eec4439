package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/coastlabs/coast-crawler/common"
	"github.com/coastlabs/coast-crawler/common/db"
	"github.com/coastlabs/coast-crawler/common/logger"
	"github.com/coastlabs/coast-crawler/common/utils"
	"github.com/go-chi/chi/v5"
)

type HealthHandler struct {
	db         *db.DB
	logService *logger.LogService
	router     *chi.Mux
}

func NewHealthHandler(database *db.DB) *HealthHandler {
	h := &HealthHandler{
		db:         database,
		logService: logger.NewLogService(database),
	}

	r := chi.NewRouter()
	r.Get("/", h.handleHealthCheck)
	r.Get("/database", h.handleDatabaseHealth)

	h.router = r
	return h
}

func (h *HealthHandler) Router() *chi.Mux {
	return h.router
}

func (h *HealthHandler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   common.AppName,
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *HealthHandler) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbErr := h.logService.CheckDatabaseHealth(ctx)
	dbStats := h.logService.GetDatabaseStats()

	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"database": map[string]interface{}{
			"status": "healthy",
			"stats":  dbStats,
		},
	}

	if dbErr != nil {
		response["status"] = "unhealthy"
		response["database"].(map[string]interface{})["status"] = "unhealthy"
		response["database"].(map[string]interface{})["error"] = dbErr.Error()
		utils.WriteJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}
