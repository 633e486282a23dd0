package checkout

import (
	"errors"
	"strings"
)

// Code classifies a checkout-domain failure. The set is closed; UNKNOWN
// is the catch-all, and its appearance means the classifying call site
// failed to map a root cause.
type Code string

const (
	CodeQuoteFailed            Code = "QUOTE_FAILED"
	CodeDraftOrderFailed       Code = "DRAFT_ORDER_FAILED"
	CodePaymentCheckoutFailed  Code = "PAYMENT_CHECKOUT_FAILED"
	CodeProductNotFound        Code = "PRODUCT_NOT_FOUND"
	CodeProviderNotConfigured  Code = "PROVIDER_NOT_CONFIGURED"
	CodeNoShippingRateSelected Code = "NO_SHIPPING_RATE_SELECTED"
	CodeNoRatesAvailable       Code = "NO_RATES_AVAILABLE"
	CodeInvalidAddress         Code = "INVALID_ADDRESS"
	CodeUnknown                Code = "UNKNOWN"
)

// Error is a classified checkout failure. Context fields are optional;
// Cause is opaque and never interpreted here. The message is derived on
// every call, never cached.
type Error struct {
	Code      Code
	Provider  string
	OrderID   string
	ProductID string
	UserID    string
	Cause     error
}

// Error renders "Checkout <code>" plus a bracketed context suffix. The
// field order provider, orderId, productId, userId is a contract.
func (e *Error) Error() string {
	var context []string

	if e.Provider != "" {
		context = append(context, "provider="+e.Provider)
	}
	if e.OrderID != "" {
		context = append(context, "orderId="+e.OrderID)
	}
	if e.ProductID != "" {
		context = append(context, "productId="+e.ProductID)
	}
	if e.UserID != "" {
		context = append(context, "userId="+e.UserID)
	}

	msg := "Checkout " + string(e.Code)
	if len(context) > 0 {
		msg += " [" + strings.Join(context, ", ") + "]"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the checkout code from err, or UNKNOWN when err was
// not raised by this taxonomy.
func CodeOf(err error) Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeUnknown
}
