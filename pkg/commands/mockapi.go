package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/cinetime/pkg/runner/serve"
)

func addMockAPI(topLevel *cobra.Command) {
	addr := ":8080"

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve a local catalog and reminder service for development.",
		Example: `
cinetime mock-api --addr :8080
CINETIME_API_URL=http://localhost:8080 cinetime movies
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			s := serve.Serve{Addr: addr, Logger: loadLogger()}
			return s.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Address to listen on.")

	topLevel.AddCommand(cmd)
}
