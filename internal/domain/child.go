package domain

import "time"

// Child represents one child in a family's summer plan. Every child is owned
// by exactly one account; deleting a child cascades to its scheduled items
// and camp interests.
type Child struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // display color tag, e.g. "#7c3aed"
	Age       int       `json:"age"`
	Sample    bool      `json:"sample,omitempty"` // seeded demo row, cleared by sample purge
}
