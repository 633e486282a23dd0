package checkout

import (
	"context"
	"fmt"
)

// FlatRateProvider quotes fixed standard/express rates regardless of
// destination. It backs deployments with no external shipping account.
type FlatRateProvider struct {
	name string
}

func NewFlatRateProvider(name string) *FlatRateProvider {
	if name == "" {
		name = "flat"
	}
	return &FlatRateProvider{name: name}
}

func (p *FlatRateProvider) Name() string { return p.name }

func (p *FlatRateProvider) Rates(_ context.Context, addr Address, items []QuoteItem) ([]Rate, error) {
	units := 0
	for _, item := range items {
		units += item.Quantity
	}

	base := 4.99 + 0.5*float64(units-1)
	return []Rate{
		{ID: "standard", Provider: p.name, Name: "Standard (5-8 days)", Amount: base, Currency: "USD"},
		{ID: "express", Provider: p.name, Name: "Express (1-2 days)", Amount: base + 10, Currency: "USD"},
	}, nil
}

// RedirectGateway builds hosted-checkout URLs under a fixed base. It
// stands in for a real payment processor in local and test runs.
type RedirectGateway struct {
	name    string
	baseURL string
}

func NewRedirectGateway(name, baseURL string) *RedirectGateway {
	return &RedirectGateway{name: name, baseURL: baseURL}
}

func (g *RedirectGateway) Name() string { return g.name }

func (g *RedirectGateway) CreateCheckout(_ context.Context, order *DraftOrder) (*PaymentSession, error) {
	if g.baseURL == "" {
		return nil, fmt.Errorf("gateway %s has no checkout base url", g.name)
	}
	return &PaymentSession{
		OrderID:     order.ID,
		Provider:    g.name,
		CheckoutURL: fmt.Sprintf("%s/pay/%s", g.baseURL, order.ID),
	}, nil
}
