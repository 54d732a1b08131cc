package view

import (
	"fmt"

	"github.com/tiffanyadora/storefront/internal/domain"
)

// EmptyCartMessage is shown in place of line items when the cart is empty.
const EmptyCartMessage = "Your cart is empty"

// FormatPrice renders an amount for display, e.g. 19.98 -> "$19.98".
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Line is the display form of a cart line. LineTotal is computed for display
// only; the authoritative total always comes from the server.
type Line struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         string `json:"size,omitempty"`
	Image        string `json:"image,omitempty"`
	UnitPrice    string `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"line_total"`
	CanDecrement bool   `json:"can_decrement"`
}

// Header is the badge state shown on every page. The count is rendered even
// when it is zero.
type Header struct {
	ItemCount int `json:"item_count"`
}

// Dropdown is the mini cart shown from the header.
type Dropdown struct {
	Lines       []Line `json:"lines"`
	Total       string `json:"total"`
	Empty       bool   `json:"empty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// CartPage is the full cart page. The checkout button is hidden entirely
// when the cart is empty.
type CartPage struct {
	Lines        []Line `json:"lines"`
	Total        string `json:"total"`
	Empty        bool   `json:"empty"`
	Placeholder  string `json:"placeholder,omitempty"`
	ShowCheckout bool   `json:"show_checkout"`
}

// CheckoutSummary is the order summary shown on the checkout page.
type CheckoutSummary struct {
	Lines     []Line `json:"lines"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

func projectLines(state domain.CartState) []Line {
	lines := make([]Line, 0, len(state.Items))
	for _, item := range state.Items {
		lines = append(lines, Line{
			ID:           item.ID,
			Name:         item.Name,
			Size:         item.Size,
			Image:        item.Image,
			UnitPrice:    FormatPrice(item.Price),
			Quantity:     item.Quantity,
			LineTotal:    FormatPrice(item.Price * float64(item.Quantity)),
			CanDecrement: item.Quantity > 1,
		})
	}
	return lines
}

// ProjectHeader derives the header badge from the cart state.
func ProjectHeader(state domain.CartState) Header {
	return Header{ItemCount: state.ItemCount()}
}

// ProjectDropdown derives the mini cart from the cart state.
func ProjectDropdown(state domain.CartState) Dropdown {
	d := Dropdown{
		Lines: projectLines(state),
		Total: FormatPrice(state.Total),
		Empty: state.IsEmpty(),
	}
	if d.Empty {
		d.Placeholder = EmptyCartMessage
	}
	return d
}

// ProjectCartPage derives the full cart page from the cart state.
func ProjectCartPage(state domain.CartState) CartPage {
	p := CartPage{
		Lines:        projectLines(state),
		Total:        FormatPrice(state.Total),
		Empty:        state.IsEmpty(),
		ShowCheckout: !state.IsEmpty(),
	}
	if p.Empty {
		p.Placeholder = EmptyCartMessage
	}
	return p
}

// ProjectCheckoutSummary derives the checkout order summary from the cart state.
func ProjectCheckoutSummary(state domain.CartState) CheckoutSummary {
	return CheckoutSummary{
		Lines:     projectLines(state),
		ItemCount: state.ItemCount(),
		Total:     FormatPrice(state.Total),
	}
}
