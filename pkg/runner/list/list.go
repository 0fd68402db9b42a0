// Package list manages the saved list from the command line.
package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/mylist"
	"tableflip.dev/cinetime/pkg/printers"
)

var errNoService = errors.New("can not use the saved list, no service")

// List prints the saved list through View.
type List struct {
	Service *app.Service
	View    mylist.View
	JSON    bool
	Printer printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	items := n.Service.Saved(n.View)
	pp := n.Printer
	if n.JSON {
		return pp.JSON(items)
	}
	pp.NewLine()
	pp.TitleWithCount(fmt.Sprintf("My List (%s, by %s)", n.View.Filter, n.View.Sort), len(items))
	pp.Countdowns(printers.ItemRows(n.Service.Clock.Now(), items, n.Service.Reminded)...)
	return nil
}

// Add saves movies by id.
type Add struct {
	Service *app.Service
	IDs     []string
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	for _, id := range n.IDs {
		item, added, err := n.Service.Save(ctx, id)
		if err != nil {
			return err
		}
		if added {
			_, _ = fmt.Fprintf(color.Output, "saved %s\n", item.Title)
		} else {
			_, _ = fmt.Fprintf(color.Output, "%s is already saved\n", item.Title)
		}
	}
	return nil
}

// Remove drops movies by id.
type Remove struct {
	Service *app.Service
	IDs     []string
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	for _, id := range n.IDs {
		if n.Service.Unsave(id) {
			_, _ = fmt.Fprintf(color.Output, "removed %s\n", id)
		} else {
			_, _ = fmt.Fprintf(color.Output, "%s was not saved\n", id)
		}
	}
	return nil
}

// Clear empties the saved list.
type Clear struct {
	Service *app.Service
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	count := n.Service.List.Len()
	n.Service.List.Clear()
	_, _ = fmt.Fprintf(color.Output, "cleared %d saved movies\n", count)
	return nil
}
