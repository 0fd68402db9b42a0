package options

import (
	"github.com/spf13/cobra"
)

// RemindOptions
type RemindOptions struct {
	Email string
	Force bool
}

func AddRemindArgs(cmd *cobra.Command, o *RemindOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "",
		"Address to notify. Defaults to the last one used.")
	cmd.Flags().BoolVar(&o.Force, "force", false,
		"Submit again even if the reminder is already known to be set.")
}
