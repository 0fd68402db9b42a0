package options

import (
	"github.com/spf13/cobra"
)

// MovieOptions filter and shape the catalog listing.
type MovieOptions struct {
	Upcoming bool
	Search   string
	Group    bool
	Trending bool
	Platform string
	Genre    string
	Category string
}

func AddMovieArgs(cmd *cobra.Command, o *MovieOptions) {
	cmd.Flags().BoolVarP(&o.Upcoming, "upcoming", "u", false,
		"Only movies that have not been released yet.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only movies whose title contains this text, ignoring case.")
	cmd.Flags().BoolVarP(&o.Group, "group", "g", false,
		"Group by this week, this month and later.")
	cmd.Flags().BoolVar(&o.Trending, "trending", false,
		"Show the featured and trending rows.")
	cmd.Flags().StringVar(&o.Platform, "platform", "",
		"Only movies on this platform, e.g. netflix.")
	cmd.Flags().StringVar(&o.Genre, "genre", "",
		"Only movies in this genre, e.g. sci-fi.")
	cmd.Flags().StringVar(&o.Category, "category", "",
		"Only movies in this category: movies, tv-shows, documentaries or top-rated.")
	cmd.MarkFlagsMutuallyExclusive("group", "trending")
	cmd.MarkFlagsMutuallyExclusive("platform", "genre", "category")
}
