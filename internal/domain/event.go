package domain

import "time"

// AdminEvent is pushed to connected admin-portal clients over the websocket
// feed when marketplace state changes server-side.
type AdminEvent struct {
	Type       string      `json:"type"` // "quote_request.submitted", "quote_item.reviewed", "booking.status_changed"
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}
