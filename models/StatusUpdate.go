package models

import "time"

// StatusUpdate is one append-only feed entry owned by a user, holding the
// encoded delta payload produced by a sync. Never mutated after creation.
type StatusUpdate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Delta     []byte    `gorm:"not null" json:"-"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
