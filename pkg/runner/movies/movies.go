// Package movies prints the catalog with live countdowns.
package movies

import (
	"context"
	"errors"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/catalog"
	"tableflip.dev/cinetime/pkg/printers"
)

// Movies lists the catalog.
type Movies struct {
	Service *app.Service
	Query   app.MovieQuery

	// Group splits the output into this week, this month and later.
	Group    bool
	Trending bool
	JSON     bool
	Printer  printers.PrettyPrint
}

// Do fetches and prints.
func (n *Movies) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list movies, no service")
	}
	movies, err := n.Service.Movies(ctx, n.Query)
	if err != nil {
		return err
	}
	now := n.Service.Clock.Now()
	pp := n.Printer

	if n.JSON {
		return pp.JSON(movies)
	}

	rows := func(title string, ms []api.Movie) {
		pp.TitleWithCount(title, len(ms))
		pp.Countdowns(printers.MovieRows(now, ms, n.Service.List.Contains, n.Service.Reminded)...)
	}

	pp.NewLine()
	switch {
	case n.Trending:
		featured, rest := catalog.Trending(movies)
		rows("Featured", featured)
		rows("Trending", rest)
	case n.Group:
		g := catalog.GroupUpcoming(movies, now)
		rows("This Week", g.ThisWeek)
		rows("This Month", g.ThisMonth)
		rows("Later", g.Later)
	default:
		title := "All Releases"
		if n.Query.Upcoming {
			title = "Upcoming"
		}
		catalog.SortByRelease(movies)
		rows(title, movies)
	}
	return nil
}
