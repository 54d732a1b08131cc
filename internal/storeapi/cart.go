package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tiffanyadora/storefront/internal/domain"
)

// cartItemDTO is the wire shape of a cart line. The store API uses numeric
// IDs, so they arrive as json.Number and convert to domain string IDs.
type cartItemDTO struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Quantity int         `json:"quantity"`
	Size     string      `json:"size"`
	Image    string      `json:"image"`
}

type cartDTO struct {
	Items []cartItemDTO `json:"items"`
	Total float64       `json:"total"`
}

func (d cartDTO) toDomain() domain.CartState {
	state := domain.EmptyCart()
	state.Total = d.Total
	for _, item := range d.Items {
		state.Items = append(state.Items, domain.CartItem{
			ID:       item.ID.String(),
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
			Image:    item.Image,
		})
	}
	return state
}

// FetchCart retrieves the full server-side cart for the session.
func (c *Client) FetchCart(ctx context.Context, sessionID string) (domain.CartState, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/cart/", sessionID, nil)
	if err != nil {
		return domain.CartState{}, err
	}

	resp, err := c.do(ctx, req, "fetch cart")
	if err != nil {
		return domain.CartState{}, err
	}

	var dto cartDTO
	if err := decode(resp, &dto); err != nil {
		return domain.CartState{}, fmt.Errorf("fetch cart: %w", err)
	}
	return dto.toDomain(), nil
}

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

// AddItem adds a product to the session's server-side cart.
func (c *Client) AddItem(ctx context.Context, sessionID string, input AddItemInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal add item request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/cart/add/", sessionID, body)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "add cart item")
	if err != nil {
		return err
	}

	if _, err := checkMutation(resp); err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "cart item added upstream",
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)
	return nil
}

// UpdateItem sets the absolute quantity of a cart line.
func (c *Client) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) error {
	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return fmt.Errorf("marshal update item request: %w", err)
	}

	path := fmt.Sprintf("/api/cart/update/%s/", url.PathEscape(itemID))
	req, err := c.newRequest(ctx, http.MethodPut, path, sessionID, body)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "update cart item")
	if err != nil {
		return err
	}

	_, err = checkMutation(resp)
	return err
}

// RemoveItem deletes a line from the session's cart.
func (c *Client) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	path := fmt.Sprintf("/api/cart/remove/%s/", url.PathEscape(itemID))
	req, err := c.newRequest(ctx, http.MethodDelete, path, sessionID, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "remove cart item")
	if err != nil {
		return err
	}

	_, err = checkMutation(resp)
	return err
}

// Checkout submits the order for the session's current cart. On success it
// returns the order ID assigned by the store. A declined order comes back as
// *ServerError with the store's reason.
func (c *Client) Checkout(ctx context.Context, sessionID string, info domain.CustomerInfo) (string, error) {
	body, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("marshal checkout request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/checkout/", sessionID, body)
	if err != nil {
		return "", err
	}

	resp, err := c.do(ctx, req, "checkout")
	if err != nil {
		return "", err
	}

	out, err := checkMutation(resp)
	if err != nil {
		return "", err
	}

	c.logger.InfoContext(ctx, "order placed upstream",
		slog.String("order_id", out.OrderID.String()),
	)
	return out.OrderID.String(), nil
}
