// Package mylist is the saved-items collection: an ordered set of movies the
// user wants to follow, persisted as a single JSON array.
package mylist

import (
	"time"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/clock"
)

// Item is one saved movie. The JSON layout matches what the web client keeps
// in local storage so exported lists can be imported as-is.
type Item struct {
	ItemID        string `json:"movieId"`
	Title         string `json:"title"`
	ImageRef      string `json:"posterUrl"`
	TargetInstant string `json:"releaseAt"`
	// AddedAt is milliseconds since the Unix epoch.
	AddedAt int64 `json:"addedAt"`
}

// FromMovie builds an Item for m. AddedAt is stamped by Store.Add.
func FromMovie(m api.Movie) Item {
	return Item{
		ItemID:        m.ID,
		Title:         m.Title,
		ImageRef:      m.PosterURL,
		TargetInstant: m.ReleaseAt,
	}
}

// Target parses TargetInstant; ok is false for missing or malformed values.
func (i Item) Target() (time.Time, bool) {
	t, err := clock.ParseInstant(i.TargetInstant)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Added returns AddedAt as a time.
func (i Item) Added() time.Time {
	return time.UnixMilli(i.AddedAt).UTC()
}

// Remaining projects the countdown for the item at now.
func (i Item) Remaining(now time.Time) clock.RemainingTime {
	return clock.ProjectString(now, i.TargetInstant)
}
