package entities

import (
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Token string `gorm:"uniqueIndex;not null" json:"token"` // UID issued by the external auth provider
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`

	Timestamp
}
