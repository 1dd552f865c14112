package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show the trend intelligence board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			items, err := app.Trends.Trends(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range items {
				fmt.Printf("#%d  %-32s  [%s]  热度 %d\n", t.Rank, t.Title, t.Platform, t.HotScore)
				fmt.Printf("    %s\n    %s\n", t.Summary, t.SearchURL)
			}
			return nil
		})
	},
}
