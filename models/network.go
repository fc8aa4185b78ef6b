package models

import "time"

// NetworkState is the process-wide connectivity snapshot. It is mutated
// exclusively by the network monitor and read by everyone else.
type NetworkState struct {
	// IsOnline is the current connectivity boolean.
	IsOnline bool `json:"is_online"`

	// OfflineSince is set while offline to the moment connectivity was
	// lost; nil while online.
	OfflineSince *time.Time `json:"offline_since,omitempty"`
}
