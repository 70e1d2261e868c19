package domain

import "time"

// Message is a free-form contact message. Append-only, immutable.
type Message struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Body      string    `json:"message"`
	Lang      string    `json:"lang"`
}
