package models

import "time"

// State is the reconciliation record persisted between updater runs. It is
// rewritten whole after every successful fetch-and-diff pass.
type State struct {
	ContentHash string    `json:"content_hash"`
	LastUpdate  time.Time `json:"last_update"`
	IPCount     int       `json:"ip_count"`
}
