// Package catalog derives the browsing projections of the movie catalog:
// title search, discover filters, upcoming groups and the trending page.
package catalog

import (
	"slices"
	"strings"
	"time"

	"tableflip.dev/cinetime/pkg/api"
)

// MatchTitle reports whether title contains query, ignoring case and the
// surrounding whitespace of query. An empty query matches everything.
func MatchTitle(title, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), q)
}

// Search keeps the movies whose title matches query, in input order.
func Search(movies []api.Movie, query string) []api.Movie {
	out := make([]api.Movie, 0, len(movies))
	for _, m := range movies {
		if MatchTitle(m.Title, query) {
			out = append(out, m)
		}
	}
	return out
}

// Kind is a discover dimension.
type Kind string

const (
	KindPlatform Kind = "platform"
	KindGenre    Kind = "genre"
	KindCategory Kind = "category"
	KindRegion   Kind = "region"
)

// TopRated is the pseudo category selecting IsTopRated movies.
const TopRated = "top-rated"

// Discover filters movies by a platform, genre or category slug. An empty
// kind or slug keeps everything; regions are not modelled and match all;
// unknown kinds match nothing.
func Discover(movies []api.Movie, kind Kind, slug string) []api.Movie {
	k := Kind(strings.ToLower(string(kind)))
	s := strings.ToLower(slug)
	out := make([]api.Movie, 0, len(movies))
	for _, m := range movies {
		if k == "" || s == "" || discovers(m, k, s) {
			out = append(out, m)
		}
	}
	return out
}

func discovers(m api.Movie, kind Kind, slug string) bool {
	switch kind {
	case KindPlatform:
		return slices.Contains(m.Platforms, slug)
	case KindGenre:
		return slices.Contains(m.Genres, slug)
	case KindCategory:
		if slug == TopRated {
			return m.IsTopRated
		}
		cat := m.Category
		if cat == "" {
			cat = api.CategoryMovies
		}
		return string(cat) == slug
	case KindRegion:
		return true
	}
	return false
}

// Groups partitions movies by how soon they release.
type Groups struct {
	ThisWeek  []api.Movie
	ThisMonth []api.Movie
	Later     []api.Movie
}

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

// GroupUpcoming buckets movies releasing within a week, within 30 days and
// later, relative to now. Each bucket is sorted by release. Movies without a
// valid release land in Later, after the dated ones.
func GroupUpcoming(movies []api.Movie, now time.Time) Groups {
	var g Groups
	for _, m := range movies {
		at, ok := m.Release()
		switch {
		case !ok:
			g.Later = append(g.Later, m)
		case !at.After(now.Add(week)):
			g.ThisWeek = append(g.ThisWeek, m)
		case !at.After(now.Add(month)):
			g.ThisMonth = append(g.ThisMonth, m)
		default:
			g.Later = append(g.Later, m)
		}
	}
	SortByRelease(g.ThisWeek)
	SortByRelease(g.ThisMonth)
	SortByRelease(g.Later)
	return g
}

// SortByRelease orders movies soonest first, undated last, in place.
func SortByRelease(movies []api.Movie) {
	slices.SortStableFunc(movies, func(a, b api.Movie) int {
		at, aok := a.Release()
		bt, bok := b.Release()
		switch {
		case aok && bok:
			return at.Compare(bt)
		case aok:
			return -1
		case bok:
			return 1
		}
		return 0
	})
}

const (
	featuredCount = 3
	trendingCount = 12
)

// Trending picks the featured and trending rows: the catalog sorted by
// release, first three featured and the next twelve listed.
func Trending(movies []api.Movie) (featured, rest []api.Movie) {
	sorted := slices.Clone(movies)
	SortByRelease(sorted)
	n := min(featuredCount, len(sorted))
	featured = sorted[:n]
	rest = sorted[n:min(n+trendingCount, len(sorted))]
	return featured, rest
}
