package printers

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	jsoniter "github.com/json-iterator/go"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/mylist"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TitleWidth bounds the title column.
const TitleWidth = 40

// PrettyPrint renders countdown tables for the terminal.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Row is one line of a countdown table.
type Row struct {
	ID      string
	Title   string
	Release string
	Left    clock.RemainingTime
	Saved   bool
	Notify  bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " movie")
	default:
		_, _ = c.Fprintln(pp.out(), " movies")
	}
}

// MovieRows projects movies at now. saved and notify may be nil.
func MovieRows(now time.Time, movies []api.Movie, saved, notify func(id string) bool) []Row {
	rows := make([]Row, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, Row{
			ID:      m.ID,
			Title:   m.Title,
			Release: m.ReleaseAt,
			Left:    clock.ProjectString(now, m.ReleaseAt),
			Saved:   saved != nil && saved(m.ID),
			Notify:  notify != nil && notify(m.ID),
		})
	}
	return rows
}

// ItemRows projects saved items at now.
func ItemRows(now time.Time, items []mylist.Item, notify func(id string) bool) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			ID:      it.ItemID,
			Title:   it.Title,
			Release: it.TargetInstant,
			Left:    it.Remaining(now),
			Saved:   true,
			Notify:  notify != nil && notify(it.ItemID),
		})
	}
	return rows
}

// Countdowns prints rows as a table. Urgent countdowns are highlighted and
// released ones dimmed.
func (pp *PrettyPrint) Countdowns(rows ...Row) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	urgent := color.New(color.FgHiRed, color.Bold)
	released := color.New(color.Faint)
	unknown := color.New(color.FgYellow, color.Italic)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint(""), bold.Sprint("Title"), bold.Sprint("Release"), bold.Sprint("Countdown")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, r := range rows {
		var left string
		switch {
		case !r.Left.Known:
			left = unknown.Sprint(r.Left.String())
		case r.Left.Released():
			left = released.Sprint("OUT NOW")
		case r.Left.Urgent():
			left = urgent.Sprint(r.Left.String())
		default:
			left = r.Left.String()
		}
		row := []interface{}{marks(r), truncate.StringWithTail(r.Title, TitleWidth, "…"), releaseLabel(r.Release), left}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(r.ID)}, row...)
		}
		tbl.AddRow(row...)
	}

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func marks(r Row) string {
	m := []rune("  ")
	if r.Saved {
		m[0] = '★'
	}
	if r.Notify {
		m[1] = '✉'
	}
	return string(m)
}

func releaseLabel(raw string) string {
	t, err := clock.ParseInstant(raw)
	if err != nil {
		return "TBA"
	}
	return t.Format("Jan 2 2006 15:04 MST")
}
