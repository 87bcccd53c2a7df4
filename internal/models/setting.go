package models

import "time"

// Setting is a key/value row used for app-level preferences, e.g. the
// recipient of the daily sales summary.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys.
const (
	SettingSalesSummaryEmail = "sales_summary_email"
)
