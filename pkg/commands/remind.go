package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cinetime/pkg/commands/options"
	"tableflip.dev/cinetime/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	ro := &options.RemindOptions{}

	cmd := &cobra.Command{
		Use:   "remind <movie-id>",
		Short: "Get an email when a movie is released.",
		Example: `
cinetime remind 1 --email you@example.com
cinetime remind 1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := remind.Remind{
				Service: svc,
				ID:      args[0],
				Email:   ro.Email,
				Force:   ro.Force,
			}
			return output.HandleError(s.Do(context.Background()))
		},
		ValidArgsFunction: savedCompletions,
	}

	options.AddRemindArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
