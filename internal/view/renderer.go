package view

import (
	"sync"

	"github.com/tiffanyadora/storefront/internal/domain"
)

// Model is the complete set of cart projections for one render pass. All
// surfaces are rebuilt together from the same state so they can never
// disagree with each other.
type Model struct {
	Header          Header          `json:"header"`
	Dropdown        Dropdown        `json:"dropdown"`
	CartPage        CartPage        `json:"cart_page"`
	CheckoutSummary CheckoutSummary `json:"checkout_summary"`
}

// Project builds the full view model from a cart state.
func Project(state domain.CartState) Model {
	return Model{
		Header:          ProjectHeader(state),
		Dropdown:        ProjectDropdown(state),
		CartPage:        ProjectCartPage(state),
		CheckoutSummary: ProjectCheckoutSummary(state),
	}
}

// Renderer holds the most recently rendered view model for a session. It
// satisfies the synchronizer's view interface: Render is called after every
// state change with the new authoritative state.
type Renderer struct {
	mu      sync.RWMutex
	current Model
}

// NewRenderer creates a renderer initialized to the empty cart.
func NewRenderer() *Renderer {
	return &Renderer{current: Project(domain.EmptyCart())}
}

// Render rebuilds every projection from the given state.
func (r *Renderer) Render(state domain.CartState) {
	model := Project(state)
	r.mu.Lock()
	r.current = model
	r.mu.Unlock()
}

// Current returns the last rendered view model.
func (r *Renderer) Current() Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
