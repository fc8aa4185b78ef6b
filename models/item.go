package models

import "time"

// Item is a catalog (menu) item. An item may belong to several categories;
// the association rows are stored separately and rebuilt wholesale when the
// server's copy is downloaded.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`

	// ImageURL is rewritten by the server on upload (local file path or
	// staging URL replaced with the canonical CDN URL).
	ImageURL string `json:"image_url,omitempty"`

	// CategoryIDs lists the categories this item appears under.
	CategoryIDs []string `json:"category_ids,omitempty"`

	GSTRate   float64   `json:"gst_rate"`
	IsVeg     bool      `json:"is_veg"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsSynced        bool       `json:"-"`
	ServerUpdatedAt *time.Time `json:"-"`
}
