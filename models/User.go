package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account on the tracker, optionally linked to a username
// on the training site once the first sync claims one
type User struct {
	ID            string      `gorm:"type:uuid;primary_key" json:"id"`
	Email         string      `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password      string      `gorm:"type:varchar(255);not null" json:"-"`
	OracUsername  *string     `gorm:"type:varchar(50);uniqueIndex;column:orac_username" json:"orac_username"`
	LastConnected *time.Time  `json:"last_connected"`
	Solutions     []*Solution `gorm:"foreignKey:UserID" json:"solutions,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DisplayName is the name shown on the feed and comparison views
func (u *User) DisplayName() string {
	if u.OracUsername != nil && *u.OracUsername != "" {
		return *u.OracUsername
	}
	return u.Email
}
