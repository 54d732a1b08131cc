package domain

// CustomerInfo is the shipping and contact information collected at checkout.
type CustomerInfo struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required,min=5"`
}

// CheckoutResult is the outcome of a checkout attempt. Success false with a
// non-empty Error means the server declined the order; transport failures
// surface as Error "Network error".
type CheckoutResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
