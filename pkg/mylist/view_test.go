package mylist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ItemID)
	}
	return out
}

func TestViewApply(t *testing.T) {
	items := []Item{
		{ItemID: "later", TargetInstant: "2026-06-01T00:00:00Z", AddedAt: 1},
		{ItemID: "past", TargetInstant: "2026-01-01T00:00:00Z", AddedAt: 3},
		{ItemID: "soon", TargetInstant: "2026-03-02T00:00:00Z", AddedAt: 2},
		{ItemID: "tba", TargetInstant: "someday", AddedAt: 4},
	}

	cases := []struct {
		view View
		want []string
	}{
		{View{Sort: ByRelease, Filter: All}, []string{"tba", "past", "soon", "later"}},
		{View{Sort: ByAdded, Filter: All}, []string{"tba", "past", "soon", "later"}},
		{View{Sort: ByRelease, Filter: Upcoming}, []string{"soon", "later"}},
		{View{Sort: ByAdded, Filter: Upcoming}, []string{"soon", "later"}},
		{View{Sort: ByRelease, Filter: Released}, []string{"tba", "past"}},
	}
	for _, tc := range cases {
		got := tc.view.Apply(items, epoch)
		require.Equal(t, tc.want, ids(got), "%+v", tc.view)
	}
	require.Equal(t, "later", items[0].ItemID, "Apply must not reorder its input")
}

func TestViewBoundaryIsReleased(t *testing.T) {
	items := []Item{{ItemID: "now", TargetInstant: epoch.Format(time.RFC3339)}}
	require.Empty(t, View{Filter: Upcoming}.Apply(items, epoch))
	require.Len(t, View{Filter: Released}.Apply(items, epoch), 1)
}

func TestParseViewOptions(t *testing.T) {
	s, err := ParseSortBy("Date-Added")
	require.NoError(t, err)
	require.Equal(t, ByAdded, s)
	s, err = ParseSortBy("")
	require.NoError(t, err)
	require.Equal(t, ByRelease, s)
	_, err = ParseSortBy("rating")
	require.Error(t, err)

	f, err := ParseFilter("UPCOMING")
	require.NoError(t, err)
	require.Equal(t, Upcoming, f)
	_, err = ParseFilter("favourites")
	require.Error(t, err)
}
