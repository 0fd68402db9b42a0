package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cinetime/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the live countdown view.",
		Example: `
cinetime watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, settings, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Close()

			w := watch.Watch{
				Service:      svc,
				TickInterval: settings.TickInterval,
				Debounce:     settings.Debounce,
			}
			return w.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
