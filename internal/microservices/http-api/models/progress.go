package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchEntry is one user's progress on one movie or series.
// A user holds at most one entry per content reference.
type WatchEntry struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64       `gorm:"not null;uniqueIndex:idx_watch_entry_content,priority:1;index" json:"user_id"`
	ContentType     ContentKind `gorm:"size:20;not null;uniqueIndex:idx_watch_entry_content,priority:2" json:"content_type"`
	ContentID       int64       `gorm:"not null;uniqueIndex:idx_watch_entry_content,priority:3" json:"content_id"`
	Status          WatchStatus `gorm:"size:30;not null;default:'watching'" json:"status"`
	CurrentSeason   *int        `json:"current_season"`
	CurrentEpisode  *int        `json:"current_episode"`
	WatchedEpisodes int         `gorm:"default:0;not null" json:"watched_episodes"`
	TotalEpisodes   int         `gorm:"default:0;not null" json:"total_episodes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (WatchEntry) TableName() string {
	return "watch_entries"
}

// NewWatchEntry builds an entry for ref with the content columns filled in.
func NewWatchEntry(userID int64, ref ContentRef) *WatchEntry {
	return &WatchEntry{
		UserID:      userID,
		ContentType: ref.Kind,
		ContentID:   ref.ID,
		Status:      StatusWatching,
	}
}

func (e *WatchEntry) Content() ContentRef {
	return ContentRef{Kind: e.ContentType, ID: e.ContentID}
}

// PercentageWatched reports completion in percent, rounded half-to-even to two
// decimals. Completed entries are always 100 and entries without a known
// episode total are 0. Watched episodes beyond the total are clamped.
func (e *WatchEntry) PercentageWatched() float64 {
	if e.Status == StatusCompleted {
		return 100.0
	}
	if e.TotalEpisodes <= 0 {
		return 0.0
	}

	watched := e.WatchedEpisodes
	if watched > e.TotalEpisodes {
		watched = e.TotalEpisodes
	}

	pct := decimal.NewFromInt(int64(watched)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(e.TotalEpisodes)), 8).
		RoundBank(2)
	return pct.InexactFloat64()
}
