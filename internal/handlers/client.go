package handlers

import (
	"encoding/json"
	"net/http"

	"smartbill/internal/httpx"
	"smartbill/internal/models"
	"smartbill/internal/repo"
)

type ClientHandler struct {
	Repo *repo.ClientRepo
}

func NewClientHandler(r *repo.ClientRepo) *ClientHandler { return &ClientHandler{Repo: r} }

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Repo.List()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

type clientReq struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	History string `json:"history"`
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	c := models.Client{Name: req.Name, Contact: req.Contact, History: req.History}
	if err := h.Repo.Create(&c); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /clients/update
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	c := models.Client{Name: req.Name, Contact: req.Contact, History: req.History}
	if err := h.Repo.Update(req.ID, &c); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.Repo.Get(req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete: POST /clients/delete?id=...
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
