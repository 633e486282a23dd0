package httpapi

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/middleware"
)

type quoteRequest struct {
	Address checkout.Address `json:"address"`
}

type confirmRequest struct {
	Address checkout.Address `json:"address"`
	RateID  string           `json:"rate_id"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())

	quote, err := s.checkout.Quote(r.Context(), userID, s.carts.Lines(), req.Address)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// handleConfirm runs the full flow over the current cart: quote, draft
// order with the selected rate, then payment session.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	userID, _ := middleware.UserIDFromContext(ctx)

	quote, err := s.checkout.Quote(ctx, userID, s.carts.Lines(), req.Address)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	order, err := s.checkout.CreateDraftOrder(ctx, userID, quote, req.RateID)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	session, err := s.checkout.Pay(ctx, order)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order":   order,
		"payment": session,
	})
}
