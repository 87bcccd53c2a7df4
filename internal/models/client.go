package models

import "time"

// Client is a billed customer. Invoices reference clients by id; deleting a
// client does not touch its invoices, so dangling references are possible.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Contact   string    `gorm:"not null;index" json:"contact"`
	History   string    `gorm:"type:text" json:"history,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
