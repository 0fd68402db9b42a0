// Package api is the client for the remote catalog and reminder service.
package api

import (
	"time"

	"tableflip.dev/cinetime/pkg/clock"
)

// Category groups movies for the discover pages.
type Category string

const (
	CategoryMovies        Category = "movies"
	CategoryTVShows       Category = "tv-shows"
	CategoryDocumentaries Category = "documentaries"
)

// Movie is one catalog item as served by GET /movies.
type Movie struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	PosterURL  string   `json:"poster_url"`
	ReleaseAt  string   `json:"release_at"`
	Category   Category `json:"category,omitempty"`
	Platforms  []string `json:"platforms,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	IsTopRated bool     `json:"is_top_rated,omitempty"`
}

// Release parses ReleaseAt. ok is false when the instant is missing or
// malformed.
func (m Movie) Release() (time.Time, bool) {
	t, err := clock.ParseInstant(m.ReleaseAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Meta is the status block of every catalog response.
type Meta struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Envelope wraps catalog payloads.
type Envelope[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

// ReminderRequest is the body of POST /reminders.
type ReminderRequest struct {
	MovieID  string `json:"movie_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	RemindAt string `json:"remind_at" validate:"required"`
}

// ErrorBody is returned by the service alongside non-2xx statuses.
type ErrorBody struct {
	Error string `json:"error"`
}
