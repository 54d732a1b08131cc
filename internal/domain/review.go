package domain

import "time"

// Review is a customer review of a product. Username identifies the author;
// edits and deletes must present the same username.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
