package mockapi

import (
	"time"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/clock"
)

// Seed returns the demo catalog with releases placed relative to now.
func Seed(now time.Time) []api.Movie {
	return []api.Movie{
		{
			ID:         "1",
			Title:      "Dune: Part Two",
			PosterURL:  "https://placehold.co/300x450/1a1a1a/white?text=Dune+2",
			ReleaseAt:  clock.FormatInstant(now.Add(5 * 24 * time.Hour)),
			Category:   api.CategoryMovies,
			Platforms:  []string{"theaters", "max"},
			Genres:     []string{"sci-fi", "adventure"},
			IsTopRated: true,
		},
		{
			ID:        "2",
			Title:     "Future Release",
			PosterURL: "https://placehold.co/300x450/2b2b2b/white?text=Future",
			ReleaseAt: clock.FormatInstant(now.Add(5 * time.Minute)),
			Category:  api.CategoryMovies,
			Platforms: []string{"netflix"},
			Genres:    []string{"sci-fi", "thriller"},
		},
		{
			ID:        "3",
			Title:     "Already Released",
			PosterURL: "https://placehold.co/300x450/3c3c3c/white?text=Released",
			ReleaseAt: clock.FormatInstant(now.Add(-time.Hour)),
			Category:  api.CategoryDocumentaries,
			Platforms: []string{"netflix", "prime"},
			Genres:    []string{"history"},
		},
		{
			ID:        "4",
			Title:     "Night Shift",
			PosterURL: "https://placehold.co/300x450/4d4d4d/white?text=Night+Shift",
			ReleaseAt: clock.FormatInstant(now.Add(21 * 24 * time.Hour)),
			Category:  api.CategoryTVShows,
			Platforms: []string{"hulu"},
			Genres:    []string{"drama"},
		},
		{
			ID:         "5",
			Title:      "The Long Orbit",
			PosterURL:  "https://placehold.co/300x450/5e5e5e/white?text=Long+Orbit",
			ReleaseAt:  clock.FormatInstant(now.Add(90 * 24 * time.Hour)),
			Category:   api.CategoryMovies,
			Platforms:  []string{"theaters"},
			Genres:     []string{"sci-fi", "drama"},
			IsTopRated: true,
		},
	}
}
