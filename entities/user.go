package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	PhotoURL string    `json:"photo_url,omitempty"`
	Role     string    `gorm:"default:user" json:"role"`

	Timestamp
}
