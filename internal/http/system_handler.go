package http

import (
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/pricelist/internal/storage/db"
)

const version = "1.0.0"

type systemHandler struct {
	health db.HealthChecker
}

func newSystemHandler(health db.HealthChecker) *systemHandler {
	return &systemHandler{health: health}
}

type livenessResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (h *systemHandler) root(w http.ResponseWriter, r *http.Request) error {
	respondJSON(w, http.StatusOK, livenessResponse{
		Status:    "ok",
		Message:   "Pricelist API",
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

func (h *systemHandler) healthCheck(w http.ResponseWriter, r *http.Request) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := h.health.IsHealthy(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Error:     err.Error(),
			Timestamp: now,
		})
		return nil
	}

	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: now,
	})
	return nil
}
