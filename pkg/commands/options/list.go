package options

import (
	"github.com/spf13/cobra"
)

// ListOptions pick the saved list view.
type ListOptions struct {
	Sort   string
	Filter string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVar(&o.Sort, "sort", "release",
		"Sort by release or added.")
	cmd.Flags().StringVar(&o.Filter, "filter", "all",
		"Show all, upcoming or released movies.")
}
