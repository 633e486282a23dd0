package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"storefront-be/internal/catalog"
)

type favoriteRequest struct {
	ProductName string `json:"product_name,omitempty"`
}

// favoriteProduct decorates a catalog product with its resolved color
// swatch so the favorites view can render it without a second lookup.
type favoriteProduct struct {
	*catalog.Product
	Color    string `json:"color,omitempty"`
	ColorHex string `json:"color_hex,omitempty"`
}

func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	products, err := s.favorites.Products(r.Context())
	if err != nil {
		// Ids are the source of truth; product resolution is allowed
		// to be stale or unavailable.
		writeJSON(w, http.StatusOK, map[string]any{
			"ids":   s.favorites.IDs(),
			"count": s.favorites.Count(),
		})
		return
	}

	views := make([]favoriteProduct, 0, len(products))
	for _, p := range products {
		views = append(views, favoriteProduct{
			Product:  p,
			Color:    catalog.OptionValue(p.Attributes, "Color"),
			ColorHex: catalog.AttributeHex(p.Attributes, "Color"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ids":      s.favorites.IDs(),
		"count":    s.favorites.Count(),
		"products": views,
	})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req favoriteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := s.favorites.Toggle(r.Context(), id, req.ProductName); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist favorites")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": id,
		"favorite":   s.favorites.IsFavorite(id),
		"count":      s.favorites.Count(),
	})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req favoriteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := s.favorites.Add(r.Context(), id, req.ProductName); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist favorites")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": id,
		"favorite":   true,
		"count":      s.favorites.Count(),
	})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.favorites.Remove(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist favorites")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": id,
		"favorite":   false,
		"count":      s.favorites.Count(),
	})
}

func (s *Server) handleClearFavorites(w http.ResponseWriter, r *http.Request) {
	if err := s.favorites.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist favorites")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
