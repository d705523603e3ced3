package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/pkg/problem"
)

type ClientHandler struct {
	Svc core.ClientService
	Log *slog.Logger
}

func NewClientHandler(svc core.ClientService, log *slog.Logger) *ClientHandler {
	return &ClientHandler{Svc: svc, Log: log}
}

func (h *ClientHandler) Mount(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{client_id}", h.Get)
		r.Put("/{client_id}", h.Update)
		r.Delete("/{client_id}", h.Delete)
	})
}

// Create registers a new client.
// 201: JSON; 400: bad JSON/validation; 409: passport already on file; 500: internal error.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in core.Client
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	client, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(client); err != nil {
		h.Log.Error("failed to encode client", "err", err)
	}
}

// Get retrieves a client by ID.
// 200: JSON; 400: missing ID; 404: not found; 500: internal error.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "client_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Client ID", "Path parameter client_id is required.")
		return
	}

	client, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get client")
		return
	}

	if err := json.NewEncoder(w).Encode(client); err != nil {
		h.Log.Error("failed to encode client", "client_id", id, "err", err)
	}
}

// Update replaces a client's details.
// 200: JSON; 400: bad JSON/validation; 404: not found; 500: internal error.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "client_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Client ID", "Path parameter client_id is required.")
		return
	}

	var in core.Client
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}
	in.ID = id

	client, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(client); err != nil {
		h.Log.Error("failed to encode client", "client_id", id, "err", err)
	}
}

// Delete removes a client without vehicles on file.
// 204: empty; 400: missing ID; 404: not found; 409: vehicles still registered; 500: internal error.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "client_id")
	if id == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Client ID", "Path parameter client_id is required.")
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns all clients.
// 200: JSON; 500: internal error.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list clients")
		return
	}

	if clients == nil {
		clients = []core.Client{}
	}

	if err := json.NewEncoder(w).Encode(clients); err != nil {
		h.Log.Error("failed to encode clients", "err", err)
	}
}
