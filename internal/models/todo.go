package models

import "time"

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

func ValidPriority(priority string) bool {
	return priority == PriorityLow ||
		priority == PriorityNormal ||
		priority == PriorityHigh
}

// Todo JSON tags carry both the persisted file shape and the API
// response shape, where the owner is exposed as "user".
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	DueDate   string    `json:"dueDate,omitempty"`
	Done      bool      `json:"done"`
	Owner     string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}
