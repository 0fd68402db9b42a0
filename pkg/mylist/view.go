package mylist

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortBy orders a view.
type SortBy string

const (
	// ByRelease sorts soonest release first. Unknown dates sort as the epoch.
	ByRelease SortBy = "release"
	// ByAdded sorts most recently saved first.
	ByAdded SortBy = "added"
)

// Filter narrows a view by release state.
type Filter string

const (
	All      Filter = "all"
	Upcoming Filter = "upcoming"
	Released Filter = "released"
)

// ParseSortBy accepts the CLI spelling of a sort order.
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "release", "releasedate", "release-date":
		return ByRelease, nil
	case "added", "dateadded", "date-added":
		return ByAdded, nil
	}
	return "", fmt.Errorf("mylist: unknown sort %q", s)
}

// ParseFilter accepts the CLI spelling of a filter.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return All, nil
	case All, Upcoming, Released:
		return f, nil
	}
	return "", fmt.Errorf("mylist: unknown filter %q", s)
}

// View is a derived projection over the saved items. It owns no state.
type View struct {
	Sort   SortBy
	Filter Filter
}

// Apply filters and sorts a copy of items relative to now.
func (v View) Apply(items []Item, now time.Time) []Item {
	nowMs := now.UnixMilli()
	out := make([]Item, 0, len(items))
	for _, it := range items {
		release := releaseMillis(it)
		switch v.Filter {
		case Upcoming:
			if release <= nowMs {
				continue
			}
		case Released:
			if release > nowMs {
				continue
			}
		}
		out = append(out, it)
	}

	switch v.Sort {
	case ByAdded:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AddedAt > out[j].AddedAt
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return releaseMillis(out[i]) < releaseMillis(out[j])
		})
	}
	return out
}

// releaseMillis treats unknown release dates as the epoch, so they count as
// released and sort first.
func releaseMillis(it Item) int64 {
	t, ok := it.Target()
	if !ok {
		return 0
	}
	return t.UnixMilli()
}
