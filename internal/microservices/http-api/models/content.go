package models

import "fmt"

// ContentKind tags what a ContentRef points at.
type ContentKind string

const (
	ContentMovie  ContentKind = "movie"
	ContentSeries ContentKind = "series"
)

func (k ContentKind) Valid() bool {
	return k == ContentMovie || k == ContentSeries
}

// ContentRef identifies a movie or a series. It is stored on a WatchEntry as
// the (content_type, content_id) column pair.
type ContentRef struct {
	Kind ContentKind
	ID   int64
}

func MovieRef(id int64) ContentRef  { return ContentRef{Kind: ContentMovie, ID: id} }
func SeriesRef(id int64) ContentRef { return ContentRef{Kind: ContentSeries, ID: id} }

func (r ContentRef) IsMovie() bool  { return r.Kind == ContentMovie }
func (r ContentRef) IsSeries() bool { return r.Kind == ContentSeries }

func (r ContentRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// WatchStatus is the viewing state of a WatchEntry.
type WatchStatus string

const (
	StatusWatching  WatchStatus = "watching"
	StatusCompleted WatchStatus = "completed"
	StatusDropped   WatchStatus = "dropped"
	StatusPlanned   WatchStatus = "planned"
)

var watchStatuses = map[WatchStatus]bool{
	StatusWatching:  true,
	StatusCompleted: true,
	StatusDropped:   true,
	StatusPlanned:   true,
}

func (s WatchStatus) Valid() bool {
	return watchStatuses[s]
}

// ParseWatchStatus returns an error for anything outside the four known statuses.
func ParseWatchStatus(raw string) (WatchStatus, error) {
	s := WatchStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q: must be one of watching, completed, dropped, planned", raw)
	}
	return s, nil
}
