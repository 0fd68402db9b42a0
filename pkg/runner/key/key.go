// Package key prints the legend for the countdown tables.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cinetime/pkg/clock"
)

// Key explains the marks and colors used by movies, list and watch.
type Key struct{}

type legend struct {
	symbol  string
	meaning string
}

// Do renders the legend to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")

	k.Key(ctx, "Marks", []legend{
		{"★", "on your list"},
		{"✉", "reminder set"},
		{"…", "reminder being set"},
		{"!", "reminder failed, try again"},
	})
	_, _ = fmt.Fprintln(color.Output, "")

	urgent := color.New(color.FgHiRed, color.Bold)
	released := color.New(color.Faint)
	unknown := color.New(color.FgYellow, color.Italic)
	k.Key(ctx, "Countdowns", []legend{
		{"04d 23h 56m 00s", "time left until release"},
		{urgent.Sprint("00d 03h 12m 09s"), "releases within a day"},
		{released.Sprint("OUT NOW"), "already released"},
		{unknown.Sprint(clock.UnknownLabel), "release date unknown"},
	})

	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

// Key renders one legend table.
func (k *Key) Key(_ context.Context, title string, rows []legend) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(title), bold.Sprint("Meaning"))
	for _, r := range rows {
		tbl.AddRow(r.symbol, r.meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
