package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tiffanyadora/storefront/internal/domain"
)

type visualDTO struct {
	ID          json.Number `json:"id"`
	ProductID   json.Number `json:"product_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ShortName   string      `json:"short_name"`
	FileType    string      `json:"file_type"`
	CSSClass    string      `json:"css_class"`
}

type productDTO struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Feature       string      `json:"feature"`
	AverageRating float64     `json:"average_rating"`
	Price         float64     `json:"price"`
	Category      string      `json:"category"`
	Pokemon       string      `json:"pokemon"`
	Location      string      `json:"location"`
	Visuals       []visualDTO `json:"visuals"`
}

func (d productDTO) toDomain() domain.Product {
	p := domain.Product{
		ID:            d.ID.String(),
		Name:          d.Name,
		Description:   d.Description,
		Feature:       d.Feature,
		AverageRating: d.AverageRating,
		Price:         d.Price,
		Category:      d.Category,
		Pokemon:       d.Pokemon,
		Location:      d.Location,
	}
	for _, v := range d.Visuals {
		p.Visuals = append(p.Visuals, domain.Visual{
			ID:          v.ID.String(),
			ProductID:   v.ProductID.String(),
			Name:        v.Name,
			Description: v.Description,
			ShortName:   v.ShortName,
			FileType:    v.FileType,
			CSSClass:    v.CSSClass,
		})
	}
	return p
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/products/", "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, req, "list products")
	if err != nil {
		return nil, err
	}

	var dtos []productDTO
	if err := decode(resp, &dtos); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// GetProduct fetches a single catalog entry by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	path := fmt.Sprintf("/api/products/%s/", url.PathEscape(id))
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return domain.Product{}, err
	}

	resp, err := c.do(ctx, req, "fetch product")
	if err != nil {
		return domain.Product{}, err
	}

	var dto productDTO
	if err := decode(resp, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("fetch product: %w", err)
	}
	return dto.toDomain(), nil
}

// SearchQuery holds the filter parameters for a catalog search.
type SearchQuery struct {
	Query     string
	Category  string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
}

// SearchResult is the store's answer to a search, including "did you mean"
// suggestions when the query matched nothing.
type SearchResult struct {
	Products    []domain.Product
	Suggestions []string
}

// Search queries the catalog with optional filters.
func (c *Client) Search(ctx context.Context, q SearchQuery) (SearchResult, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.MinPrice > 0 {
		params.Set("min_price", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		params.Set("max_price", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.MinRating > 0 {
		params.Set("min_rating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}

	path := "/api/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return SearchResult{}, err
	}

	resp, err := c.do(ctx, req, "search products")
	if err != nil {
		return SearchResult{}, err
	}

	var dto struct {
		Products    []productDTO `json:"products"`
		Suggestions []string     `json:"suggestions"`
	}
	if err := decode(resp, &dto); err != nil {
		return SearchResult{}, fmt.Errorf("search products: %w", err)
	}

	result := SearchResult{Suggestions: dto.Suggestions}
	for _, d := range dto.Products {
		result.Products = append(result.Products, d.toDomain())
	}
	return result, nil
}

// ProductInput holds the fields for creating or updating a catalog entry.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Feature     string  `json:"feature,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Pokemon     string  `json:"pokemon,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// CreateProduct adds a new catalog entry.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (domain.Product, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return domain.Product{}, fmt.Errorf("marshal create product request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/products/add/", "", body)
	if err != nil {
		return domain.Product{}, err
	}

	resp, err := c.do(ctx, req, "create product")
	if err != nil {
		return domain.Product{}, err
	}

	var dto struct {
		Success bool       `json:"success"`
		Error   string     `json:"error"`
		Product productDTO `json:"product"`
	}
	if err := decode(resp, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	if !dto.Success {
		return domain.Product{}, &ServerError{Message: dto.Error}
	}
	return dto.Product.toDomain(), nil
}

// UpdateProduct modifies an existing catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal update product request: %w", err)
	}

	path := fmt.Sprintf("/api/products/%s/update/", url.PathEscape(id))
	req, err := c.newRequest(ctx, http.MethodPut, path, "", body)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "update product")
	if err != nil {
		return err
	}

	_, err = checkMutation(resp)
	return err
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/products/%s/delete/", url.PathEscape(id))
	req, err := c.newRequest(ctx, http.MethodDelete, path, "", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "delete product")
	if err != nil {
		return err
	}

	_, err = checkMutation(resp)
	return err
}
