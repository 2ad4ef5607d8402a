package models

import "time"

// CopyCount is the number of times a reason was copied from the page.
type CopyCount struct {
	Category     string    `json:"category"`
	Reason       string    `json:"reason"`
	Count        int64     `json:"count"`
	LastCopiedAt time.Time `json:"last_copied_at"`
}
