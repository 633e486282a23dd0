package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type addToCartRequest struct {
	ItemKey   string `json:"item_key"`
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

type updateSizeRequest struct {
	Size string `json:"size"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": s.carts.Lines(),
		"count": s.carts.ItemCount(),
	})
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemKey == "" || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "item_key and product_id are required")
		return
	}

	if err := s.carts.AddToCart(r.Context(), req.ItemKey, req.ProductID, req.Size, req.Color); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist cart")
		return
	}

	line, _ := s.carts.GetItem(req.ItemKey)
	writeJSON(w, http.StatusCreated, map[string]any{
		"item_key": req.ItemKey,
		"item":     line,
		"count":    s.carts.ItemCount(),
	})
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.carts.UpdateQuantity(r.Context(), key, req.Delta); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist cart")
		return
	}

	line, ok := s.carts.GetItem(key)
	writeJSON(w, http.StatusOK, map[string]any{
		"item_key": key,
		"present":  ok,
		"item":     line,
		"count":    s.carts.ItemCount(),
	})
}

func (s *Server) handleUpdateSize(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req updateSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.carts.UpdateSize(r.Context(), key, req.Size); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist cart")
		return
	}

	line, ok := s.carts.GetItem(key)
	writeJSON(w, http.StatusOK, map[string]any{
		"item_key": key,
		"present":  ok,
		"item":     line,
	})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := s.carts.RemoveItem(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": s.carts.ItemCount(),
	})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.carts.ClearCart(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
