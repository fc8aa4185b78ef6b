package models

import "time"

// Category is a menu category. IsSynced and ServerUpdatedAt are sync-control
// attributes owned by the sync coordinator; business fields are owned by the
// caller that issued the mutation.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsSynced is true once the server has acknowledged the current local
	// version of this category.
	IsSynced bool `json:"-"`

	// ServerUpdatedAt is the last server timestamp seen for this category,
	// used to detect whether the local copy is stale relative to the server.
	ServerUpdatedAt *time.Time `json:"-"`
}
