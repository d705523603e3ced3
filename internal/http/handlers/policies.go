package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/pkg/problem"
)

type PolicyHandler struct {
	Svc core.PolicyService
	Log *slog.Logger
}

func NewPolicyHandler(svc core.PolicyService, log *slog.Logger) *PolicyHandler {
	return &PolicyHandler{Svc: svc, Log: log}
}

func (h *PolicyHandler) Mount(r chi.Router) {
	r.Route("/policies", func(r chi.Router) {
		r.Post("/", h.Issue)
		r.Get("/", h.List)
		r.Get("/{policy_number}", h.Get)
		r.Post("/{policy_id}/cancel", h.Cancel)
	})
}

// Issue prices and creates a policy for a stored vehicle.
// 201: JSON; 400: bad JSON/validation; 404: vehicle not found; 409: number space exhausted; 500: internal error.
func (h *PolicyHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var in core.IssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	policy, err := h.Svc.Issue(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(policy); err != nil {
		h.Log.Error("failed to encode policy", "err", err)
	}
}

// Get retrieves a policy by its number.
// 200: JSON; 400: missing number; 404: not found; 500: internal error.
func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "policy_number")
	if number == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Policy Number", "Path parameter policy_number is required.")
		return
	}

	policy, err := h.Svc.GetByNumber(r.Context(), core.PolicyNumber(number))
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get policy")
		return
	}

	if err := json.NewEncoder(w).Encode(policy); err != nil {
		h.Log.Error("failed to encode policy", "policy_number", number, "err", err)
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel performs the active → cancelled transition.
// 200: JSON; 400: missing ID/reason; 404: not found; 409: already cancelled; 500: internal error.
func (h *PolicyHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "policy_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Policy ID", "Path parameter policy_id is required.")
		return
	}

	var in cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	policy, err := h.Svc.Cancel(r.Context(), id, in.Reason)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(policy); err != nil {
		h.Log.Error("failed to encode policy", "policy_id", id, "err", err)
	}
}

// List returns policies with optional filtering and pagination. Status
// filters match the effective status as of now.
// 200: JSON; 500: internal error.
func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := core.PolicyFilter{
		VehicleID: r.URL.Query().Get("vehicle_id"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = core.EffectiveStatus(status)
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	policies, total, err := h.Svc.List(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list policies")
		return
	}

	// Return empty array instead of null
	if policies == nil {
		policies = []core.Policy{}
	}

	response := map[string]interface{}{
		"items":  policies,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.Log.Error("failed to encode policies", "err", err)
	}
}
