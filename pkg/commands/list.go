package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cinetime/pkg/commands/options"
	"tableflip.dev/cinetime/pkg/mylist"
	"tableflip.dev/cinetime/pkg/printers"
	"tableflip.dev/cinetime/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "my-list"},
		Short:   "Show the saved list.",
		Example: `
cinetime list
cinetime list --filter upcoming --sort added
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortBy, err := mylist.ParseSortBy(lo.Sort)
			if err != nil {
				return output.HandleError(err)
			}
			filter, err := mylist.ParseFilter(lo.Filter)
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := list.List{
				Service: svc,
				View:    mylist.View{Sort: sortBy, Filter: filter},
				JSON:    output.JSON,
				Printer: printers.PrettyPrint{ShowID: io.ShowID},
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(mylist.ByRelease), string(mylist.ByAdded)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("filter", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(mylist.All), string(mylist.Upcoming), string(mylist.Released)}, cobra.ShellCompDirectiveNoFileComp
	})

	addListAdd(cmd)
	addListRemove(cmd)
	addListClear(cmd)

	topLevel.AddCommand(cmd)
}

func addListAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <movie-id>...",
		Short: "Save movies to the list.",
		Example: `
cinetime list add 1 2
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := list.Add{Service: svc, IDs: args}
			return output.HandleError(s.Do(context.Background()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addListRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <movie-id>...",
		Aliases: []string{"rm"},
		Short:   "Remove movies from the list.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := list.Remove{Service: svc, IDs: args}
			return output.HandleError(s.Do(context.Background()))
		},
		ValidArgsFunction: savedCompletions,
	}
	topLevel.AddCommand(cmd)
}

func addListClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every movie from the list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := list.Clear{Service: svc}
			return output.HandleError(s.Do(context.Background()))
		},
	}
	topLevel.AddCommand(cmd)
}
