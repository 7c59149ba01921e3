package entities

import (
	"github.com/google/uuid"
)

// Tag rows are seeded once and treated as read-only afterwards.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"uniqueIndex;not null" json:"name"`
	Color string    `json:"color"`
	Slug  string    `gorm:"uniqueIndex;not null" json:"slug"`

	Timestamp
}
