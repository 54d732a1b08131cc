package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffanyadora/storefront/internal/domain"
)

func twoItemCart() domain.CartState {
	return domain.CartState{
		Items: []domain.CartItem{
			{ID: "1", Name: "Pikachu Plush", Price: 9.99, Quantity: 2, Size: "M"},
			{ID: "2", Name: "Flygon T-Shirt", Price: 24.50, Quantity: 1},
		},
		Total: 44.48,
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$19.98", FormatPrice(19.98))
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$10.00", FormatPrice(9.995))
}

func TestProjectHeader_ShowsZero(t *testing.T) {
	assert.Equal(t, 0, ProjectHeader(domain.EmptyCart()).ItemCount)
	assert.Equal(t, 3, ProjectHeader(twoItemCart()).ItemCount)
}

func TestProjectCartPage_LineTotals(t *testing.T) {
	page := ProjectCartPage(twoItemCart())

	require.Len(t, page.Lines, 2)
	assert.Equal(t, "$9.99", page.Lines[0].UnitPrice)
	assert.Equal(t, "$19.98", page.Lines[0].LineTotal)
	assert.Equal(t, "$24.50", page.Lines[1].LineTotal)
	assert.Equal(t, "$44.48", page.Total)
	assert.True(t, page.ShowCheckout)
	assert.Empty(t, page.Placeholder)
}

func TestProjectCartPage_Empty(t *testing.T) {
	page := ProjectCartPage(domain.EmptyCart())

	assert.True(t, page.Empty)
	assert.Equal(t, EmptyCartMessage, page.Placeholder)
	assert.False(t, page.ShowCheckout)
	assert.Empty(t, page.Lines)
}

func TestProjectLines_DecrementDisabledAtOne(t *testing.T) {
	page := ProjectCartPage(twoItemCart())

	assert.True(t, page.Lines[0].CanDecrement)
	assert.False(t, page.Lines[1].CanDecrement)
}

func TestProjectDropdown_Empty(t *testing.T) {
	d := ProjectDropdown(domain.EmptyCart())
	assert.True(t, d.Empty)
	assert.Equal(t, EmptyCartMessage, d.Placeholder)
}

func TestProjection_Idempotent(t *testing.T) {
	state := twoItemCart()
	assert.Equal(t, Project(state), Project(state))
}

func TestRenderer(t *testing.T) {
	r := NewRenderer()
	assert.True(t, r.Current().CartPage.Empty)

	r.Render(twoItemCart())
	model := r.Current()
	assert.Equal(t, 3, model.Header.ItemCount)
	assert.Equal(t, "$44.48", model.CheckoutSummary.Total)

	r.Render(domain.EmptyCart())
	assert.Equal(t, 0, r.Current().Header.ItemCount)
	assert.False(t, r.Current().CartPage.ShowCheckout)
}
