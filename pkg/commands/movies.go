package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/catalog"
	"tableflip.dev/cinetime/pkg/commands/options"
	"tableflip.dev/cinetime/pkg/printers"
	"tableflip.dev/cinetime/pkg/runner/movies"
)

func addMovies(topLevel *cobra.Command) {
	mo := &options.MovieOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "movies",
		Aliases: []string{"m", "releases"},
		Short:   "List the catalog with countdowns.",
		Example: `
cinetime movies
cinetime movies --upcoming --group
cinetime movies --search dune
cinetime movies --genre sci-fi
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			q := app.MovieQuery{Upcoming: mo.Upcoming, Search: mo.Search}
			switch {
			case mo.Platform != "":
				q.Kind, q.Slug = catalog.KindPlatform, mo.Platform
			case mo.Genre != "":
				q.Kind, q.Slug = catalog.KindGenre, mo.Genre
			case mo.Category != "":
				q.Kind, q.Slug = catalog.KindCategory, mo.Category
			}

			s := movies.Movies{
				Service:  svc,
				Query:    q,
				Group:    mo.Group,
				Trending: mo.Trending,
				JSON:     output.JSON,
				Printer:  printers.PrettyPrint{ShowID: io.ShowID},
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddMovieArgs(cmd, mo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
