// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// StorageOptions select where state is kept.
type StorageOptions struct {
	Ephemeral bool
}

func AddStorageArgs(cmd *cobra.Command, o *StorageOptions) {
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep the saved list and reminders in memory for this run only.")
}
