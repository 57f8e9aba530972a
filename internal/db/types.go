package db

import (
	"time"
)

// Entry represents one row of kv_entries
type Entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
