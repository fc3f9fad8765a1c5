package models

import "time"

type Series struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	TotalSeasons int       `gorm:"default:0;not null" json:"total_seasons"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// association
	Seasons []Season `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE;" json:"seasons,omitempty"`
}

func (Series) TableName() string {
	return "series"
}

// Season is a numbered block of episodes of a Series.
type Season struct {
	ID            int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SeriesID      int64 `gorm:"not null;index" json:"series_id"`
	Number        int   `gorm:"not null" json:"number"`
	EpisodesCount int   `gorm:"default:0;not null" json:"episodes_count"`
}

func (Season) TableName() string {
	return "seasons"
}
