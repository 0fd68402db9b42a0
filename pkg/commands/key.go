package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cinetime/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Explain the marks and colors in countdown tables.",
		Example: `
cinetime key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
