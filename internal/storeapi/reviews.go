package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tiffanyadora/storefront/internal/domain"
)

type reviewDTO struct {
	ID        json.Number `json:"id"`
	ProductID json.Number `json:"product_id"`
	Username  string      `json:"username"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"created_at"`
}

func (d reviewDTO) toDomain() domain.Review {
	return domain.Review{
		ID:        d.ID.String(),
		ProductID: d.ProductID.String(),
		Username:  d.Username,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

// ReviewInput holds the fields for creating or editing a review.
type ReviewInput struct {
	ProductID string `json:"product_id"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// AddReview submits a new product review.
func (c *Client) AddReview(ctx context.Context, input ReviewInput) (domain.Review, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return domain.Review{}, fmt.Errorf("marshal add review request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/reviews/add/", "", body)
	if err != nil {
		return domain.Review{}, err
	}

	resp, err := c.do(ctx, req, "add review")
	if err != nil {
		return domain.Review{}, err
	}

	var dto struct {
		Success bool      `json:"success"`
		Error   string    `json:"error"`
		Review  reviewDTO `json:"review"`
	}
	if err := decode(resp, &dto); err != nil {
		return domain.Review{}, fmt.Errorf("add review: %w", err)
	}
	if !dto.Success {
		return domain.Review{}, &ServerError{Message: dto.Error}
	}
	return dto.Review.toDomain(), nil
}

// UpdateReview edits an existing review. The username must match the
// review's author or the store rejects the edit.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, input ReviewInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal update review request: %w", err)
	}

	path := fmt.Sprintf("/api/reviews/%s/update/", url.PathEscape(reviewID))
	req, err := c.newRequest(ctx, http.MethodPut, path, "", body)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "update review")
	if err != nil {
		return err
	}

	_, err = checkMutation(resp)
	return err
}

// DeleteReview removes a review. The store requires the author's username in
// the request body to authorize the delete.
func (c *Client) DeleteReview(ctx context.Context, reviewID, username string) error {
	body, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return fmt.Errorf("marshal delete review request: %w", err)
	}

	path := fmt.Sprintf("/api/reviews/%s/delete/", url.PathEscape(reviewID))
	req, err := c.newRequest(ctx, http.MethodDelete, path, "", body)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "delete review")
	if err != nil {
		return err
	}

	_, err = checkMutation(resp)
	return err
}
