package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trendremix/internal/types"
)

var remixTopic string

var remixCmd = &cobra.Command{
	Use:   "remix [history-id]",
	Short: "Remix a deconstructed note with a new topic",
	Long: `Combines a deconstruction history entry (see 'trendremix history') with a
new topic and generates a fresh note, plus a shooting script when the
reference was a video. Both are saved to their libraries.

Example:
  trendremix remix d_1717320000000 --topic "推广我的新台灯"`,
	Args: cobra.ExactArgs(1),
	RunE: runRemix,
}

func init() {
	remixCmd.Flags().StringVarP(&remixTopic, "topic", "p", "", "the new topic to create content about (required)")
	_ = remixCmd.MarkFlagRequired("topic")
}

func runRemix(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer app.Close()

	ref, ok := app.Deconstruct.FindHistory(args[0])
	if !ok {
		return types.Validationf("no history entry with id %s", args[0])
	}

	result, err := app.Remix.Run(cmd.Context(), ref, remixTopic)
	if err != nil {
		return err
	}

	if err := app.Notes.Prepend(result.Note); err != nil {
		return err
	}
	fmt.Printf("Saved note %s [%s]\n", result.Note.ID, result.Note.FromPlatform)
	fmt.Printf("Title: %s\n", result.Note.Title)
	fmt.Printf("Tags:  %s\n", strings.Join(result.Note.Tags, " "))

	if result.Script != nil {
		if err := app.Scripts.Prepend(*result.Script); err != nil {
			return err
		}
		fmt.Printf("Saved script %s (%d scenes)\n", result.Script.ID, len(result.Script.Scenes))
	}
	return nil
}
