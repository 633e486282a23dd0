package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"storefront-be/internal/cart"
	"storefront-be/internal/chain"
	"storefront-be/internal/checkout"
	"storefront-be/internal/favorites"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
)

// Server is the storefront API boundary: cart and favorites state,
// checkout, and a small admin surface for deployed contract ids.
type Server struct {
	Router *mux.Router

	carts     *cart.Store
	favorites *favorites.Store
	checkout  checkout.Service

	appConfigPath string
}

func NewServer(carts *cart.Store, favs *favorites.Store, co checkout.Service, appConfigPath string) *Server {
	s := &Server{
		Router:        mux.NewRouter(),
		carts:         carts,
		favorites:     favs,
		checkout:      co,
		appConfigPath: appConfigPath,
	}

	s.Router.Use(
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS,
		middleware.AuthMiddleware,
		middleware.RateLimitMiddleware,
	)

	s.Router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := s.Router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/cart", s.handleGetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", s.handleClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", s.handleAddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{key}/quantity", s.handleUpdateQuantity).Methods(http.MethodPatch)
	api.HandleFunc("/cart/items/{key}/size", s.handleUpdateSize).Methods(http.MethodPatch)
	api.HandleFunc("/cart/items/{key}", s.handleRemoveItem).Methods(http.MethodDelete)

	api.HandleFunc("/favorites", s.handleGetFavorites).Methods(http.MethodGet)
	api.HandleFunc("/favorites", s.handleClearFavorites).Methods(http.MethodDelete)
	api.HandleFunc("/favorites/{id}/toggle", s.handleToggleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{id}", s.handleAddFavorite).Methods(http.MethodPut)
	api.HandleFunc("/favorites/{id}", s.handleRemoveFavorite).Methods(http.MethodDelete)

	api.HandleFunc("/checkout/quote", s.handleQuote).Methods(http.MethodPost)
	api.HandleFunc("/checkout/confirm", s.handleConfirm).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/contracts", s.handleContracts).Methods(http.MethodGet)

	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCheckoutError renders a classified checkout failure: the derived
// message verbatim, plus the code so the UI can branch for recovery.
func writeCheckoutError(w http.ResponseWriter, err error) {
	code := checkout.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case checkout.CodeInvalidAddress:
		status = http.StatusUnprocessableEntity
	case checkout.CodeProductNotFound:
		status = http.StatusNotFound
	case checkout.CodeProviderNotConfigured:
		status = http.StatusServiceUnavailable
	case checkout.CodeNoShippingRateSelected:
		status = http.StatusBadRequest
	case checkout.CodeNoRatesAvailable:
		status = http.StatusConflict
	case checkout.CodeQuoteFailed, checkout.CodeDraftOrderFailed, checkout.CodePaymentCheckoutFailed:
		status = http.StatusBadGateway
	}

	var ce *checkout.Error
	message := err.Error()
	if errors.As(err, &ce) {
		message = ce.Error()
	}

	writeJSON(w, status, map[string]string{
		"code":    string(code),
		"message": message,
	})
}

func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	cfg, err := chain.LoadAppConfig(s.appConfigPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load contract config")
		return
	}
	writeJSON(w, http.StatusOK, cfg.App.Contracts)
}
