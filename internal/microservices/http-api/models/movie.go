package models

import "time"

// Movie is a single title a user can put on a watchlist. Watch entries point
// at it through ContentRef, there is no foreign key back to it.
type Movie struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Genre       *string   `gorm:"size:120" json:"genre"`
	ReleaseYear *int      `json:"release_year"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Movie) TableName() string {
	return "movies"
}
