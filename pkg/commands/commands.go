package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/cinetime/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	so     = &options.StorageOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cinetime",
		Short: base.Wrap80("Count down to movie releases, keep a watch list and get reminded when they drop."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	options.AddStorageArgs(cmd, so)
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addMovies(topLevel)
	addList(topLevel)
	addRemind(topLevel)
	addWatch(topLevel)
	addMockAPI(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
