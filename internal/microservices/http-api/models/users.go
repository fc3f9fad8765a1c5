package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	WatchEntries []WatchEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (User) TableName() string {
	return "users"
}
