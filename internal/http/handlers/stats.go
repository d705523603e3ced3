package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
)

type StatsHandler struct {
	Svc core.StatsService
	Log *slog.Logger
}

func NewStatsHandler(svc core.StatsService, log *slog.Logger) *StatsHandler {
	return &StatsHandler{Svc: svc, Log: log}
}

func (h *StatsHandler) Mount(r chi.Router) {
	r.Get("/stats", h.Portfolio)
}

// Portfolio returns portfolio-wide aggregates as of now.
// 200: JSON; 500: internal error.
func (h *StatsHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Portfolio(r.Context())
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to aggregate portfolio")
		return
	}

	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.Log.Error("failed to encode stats", "err", err)
	}
}
