package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/pkg/problem"
)

type VehicleHandler struct {
	Svc core.VehicleService
	Log *slog.Logger
}

func NewVehicleHandler(svc core.VehicleService, log *slog.Logger) *VehicleHandler {
	return &VehicleHandler{Svc: svc, Log: log}
}

func (h *VehicleHandler) Mount(r chi.Router) {
	r.Route("/vehicles", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{vehicle_id}", h.Get)
		r.Put("/{vehicle_id}", h.Update)
		r.Delete("/{vehicle_id}", h.Delete)
	})
}

// Create registers a vehicle for an existing client.
// 201: JSON; 400: bad JSON/validation; 404: owner not found; 409: VIN or registration taken; 500: internal error.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in core.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	vehicle, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(vehicle); err != nil {
		h.Log.Error("failed to encode vehicle", "err", err)
	}
}

// Get retrieves a vehicle by ID.
// 200: JSON; 400: missing ID; 404: not found; 500: internal error.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "vehicle_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Vehicle ID", "Path parameter vehicle_id is required.")
		return
	}

	vehicle, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get vehicle")
		return
	}

	if err := json.NewEncoder(w).Encode(vehicle); err != nil {
		h.Log.Error("failed to encode vehicle", "vehicle_id", id, "err", err)
	}
}

// Update replaces a vehicle's details.
// 200: JSON; 400: bad JSON/validation; 404: not found; 500: internal error.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "vehicle_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Vehicle ID", "Path parameter vehicle_id is required.")
		return
	}

	var in core.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}
	in.ID = id

	vehicle, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(vehicle); err != nil {
		h.Log.Error("failed to encode vehicle", "vehicle_id", id, "err", err)
	}
}

// Delete removes a vehicle without policies on file.
// 204: empty; 400: missing ID; 404: not found; 409: policies still reference it; 500: internal error.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "vehicle_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Vehicle ID", "Path parameter vehicle_id is required.")
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns all vehicles, or one client's fleet with ?client_id=.
// 200: JSON; 500: internal error.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		vehicles []core.Vehicle
		err      error
	)

	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		vehicles, err = h.Svc.ListByClient(r.Context(), clientID)
	} else {
		vehicles, err = h.Svc.List(r.Context())
	}
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list vehicles")
		return
	}

	if vehicles == nil {
		vehicles = []core.Vehicle{}
	}

	if err := json.NewEncoder(w).Encode(vehicles); err != nil {
		h.Log.Error("failed to encode vehicles", "err", err)
	}
}
