package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/logger"
)

// RateProvider is the shipping-rate collaborator.
type RateProvider interface {
	Name() string
	Rates(ctx context.Context, addr Address, items []QuoteItem) ([]Rate, error)
}

// PaymentGateway turns a draft order into a hosted payment session.
type PaymentGateway interface {
	Name() string
	CreateCheckout(ctx context.Context, order *DraftOrder) (*PaymentSession, error)
}

// Catalog is the product-lookup capability the quote step needs.
type Catalog interface {
	ProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

// Service runs the checkout flow over a cart snapshot. Every failure
// surfaces as a *Error with context fields filled; there is no retry
// logic at this layer.
type Service interface {
	Quote(ctx context.Context, userID string, lines []cart.Line, addr Address) (*Quote, error)
	CreateDraftOrder(ctx context.Context, userID string, quote *Quote, rateID string) (*DraftOrder, error)
	Pay(ctx context.Context, order *DraftOrder) (*PaymentSession, error)
}

type service struct {
	catalog  Catalog
	rates    RateProvider
	payments PaymentGateway
}

// NewService creates a checkout service. rates and payments may be nil
// when the deployment has no provider configured; the corresponding
// steps then fail with PROVIDER_NOT_CONFIGURED.
func NewService(cat Catalog, rates RateProvider, payments PaymentGateway) Service {
	return &service{catalog: cat, rates: rates, payments: payments}
}

func (s *service) Quote(ctx context.Context, userID string, lines []cart.Line, addr Address) (*Quote, error) {
	if !addr.Valid() {
		return nil, &Error{Code: CodeInvalidAddress, UserID: userID}
	}
	if len(lines) == 0 {
		return nil, &Error{Code: CodeQuoteFailed, UserID: userID}
	}
	if s.rates == nil {
		return nil, &Error{Code: CodeProviderNotConfigured, UserID: userID}
	}

	quote := &Quote{Currency: "USD"}
	for _, line := range lines {
		p, err := s.catalog.ProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, &Error{Code: CodeQuoteFailed, ProductID: line.ProductID, UserID: userID, Cause: err}
		}
		if p == nil {
			return nil, &Error{Code: CodeProductNotFound, ProductID: line.ProductID, UserID: userID}
		}

		item := QuoteItem{
			ItemKey:   line.ItemKey,
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			Subtotal:  p.Price * float64(line.Quantity),
		}
		quote.Items = append(quote.Items, item)
		quote.Subtotal += item.Subtotal
		if p.Currency != "" {
			quote.Currency = p.Currency
		}
	}

	rates, err := s.rates.Rates(ctx, addr, quote.Items)
	if err != nil {
		return nil, &Error{Code: CodeQuoteFailed, Provider: s.rates.Name(), UserID: userID, Cause: err}
	}
	if len(rates) == 0 {
		return nil, &Error{Code: CodeNoRatesAvailable, Provider: s.rates.Name(), UserID: userID}
	}
	quote.Rates = rates

	return quote, nil
}

func (s *service) CreateDraftOrder(ctx context.Context, userID string, quote *Quote, rateID string) (*DraftOrder, error) {
	if quote == nil || len(quote.Items) == 0 {
		return nil, &Error{Code: CodeDraftOrderFailed, UserID: userID}
	}
	if rateID == "" {
		return nil, &Error{Code: CodeNoShippingRateSelected, UserID: userID}
	}

	var selected *Rate
	for i := range quote.Rates {
		if quote.Rates[i].ID == rateID {
			selected = &quote.Rates[i]
			break
		}
	}
	if selected == nil {
		return nil, &Error{Code: CodeNoShippingRateSelected, UserID: userID}
	}

	order := &DraftOrder{
		ID:           uuid.New().String(),
		UserID:       userID,
		Items:        quote.Items,
		ShippingRate: *selected,
		Total:        quote.Subtotal + selected.Amount,
		CreatedAt:    time.Now(),
	}

	logger.FromCtx(ctx).Info("draft order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func (s *service) Pay(ctx context.Context, order *DraftOrder) (*PaymentSession, error) {
	if order == nil {
		return nil, &Error{Code: CodePaymentCheckoutFailed}
	}
	if s.payments == nil {
		return nil, &Error{Code: CodeProviderNotConfigured, OrderID: order.ID, UserID: order.UserID}
	}

	session, err := s.payments.CreateCheckout(ctx, order)
	if err != nil {
		return nil, &Error{
			Code:     CodePaymentCheckoutFailed,
			Provider: s.payments.Name(),
			OrderID:  order.ID,
			UserID:   order.UserID,
			Cause:    err,
		}
	}

	logger.FromCtx(ctx).Info("payment session created",
		zap.String("order_id", order.ID),
		zap.String("provider", session.Provider),
	)
	return session, nil
}
