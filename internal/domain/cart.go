package domain

// CartItem is a single line in the server-side cart, mirrored locally as
// reported by the store API. Price is the unit price; the line total is a
// projection concern and never stored.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// CartState is the local mirror of the server-authoritative cart. It is
// replaced wholesale on every successful fetch, never patched in place.
type CartState struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// EmptyCart returns a cart state with no items. The items slice is non-nil
// so JSON output is [] rather than null.
func EmptyCart() CartState {
	return CartState{Items: []CartItem{}}
}

// ItemCount returns the sum of quantities across all lines. This is the
// number shown in the header badge, including zero for an empty cart.
func (c CartState) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c CartState) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item returns the line with the given ID, if present.
func (c CartState) Item(id string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return CartItem{}, false
}

// Clone returns a deep copy so snapshots cannot alias the mirror's slice.
func (c CartState) Clone() CartState {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return CartState{Items: items, Total: c.Total}
}
