package checkout

import "time"

type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Valid reports whether the address carries the fields every rate
// provider requires.
func (a Address) Valid() bool {
	return a.Line1 != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

type Rate struct {
	ID       string  `json:"id"`
	Provider string  `json:"provider"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type QuoteItem struct {
	ItemKey   string  `json:"item_key"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type Quote struct {
	Items    []QuoteItem `json:"items"`
	Rates    []Rate      `json:"rates"`
	Subtotal float64     `json:"subtotal"`
	Currency string      `json:"currency"`
}

type DraftOrder struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Items        []QuoteItem `json:"items"`
	ShippingRate Rate        `json:"shipping_rate"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
}

type PaymentSession struct {
	OrderID     string `json:"order_id"`
	Provider    string `json:"provider"`
	CheckoutURL string `json:"checkout_url"`
}
