package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trendremix/internal/deconstruct"
)

var (
	deconstructText string
	deconstructJSON bool
)

var deconstructCmd = &cobra.Command{
	Use:   "deconstruct [media files...]",
	Short: "Deconstruct reference content into a structured breakdown",
	Long: `Sends the given media files (images or short videos, up to 9, max 20MB
each) plus any pasted text to the model and prints the structured breakdown.
The result is appended to the deconstruction history.

Pass --text - to read the text from stdin.

Example:
  trendremix deconstruct clip.mp4 --text "看看这个视频"`,
	RunE: runDeconstruct,
}

func init() {
	deconstructCmd.Flags().StringVarP(&deconstructText, "text", "t", "", "pasted text or share link (- for stdin)")
	deconstructCmd.Flags().BoolVar(&deconstructJSON, "json", false, "print the full note as JSON")
}

func runDeconstruct(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer app.Close()

	text := deconstructText
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	app.Deconstruct.SetText(text)

	if len(args) > 0 {
		batch, err := deconstruct.LoadAttachments(cmd.Context(), args)
		if err != nil {
			return err
		}
		if err := app.Deconstruct.AddAttachments(batch); err != nil {
			return err
		}
	}

	if link := app.Deconstruct.DetectedLink(); link != "" {
		fmt.Fprintf(os.Stderr, "Detected link: %s\n", link)
	}

	reporter := deconstruct.StartProgress(deconstruct.StageInterval, func(stage deconstruct.ProgressStage) {
		fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", stage.Percent, stage.Message)
	})
	note, err := app.Deconstruct.Run(cmd.Context())
	reporter.Stop()
	if err != nil {
		return err
	}

	if deconstructJSON {
		out, err := json.MarshalIndent(note, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Deconstructed %s [%s / %s]\n", note.ID, note.Platform, note.Type)
	fmt.Printf("Title:      %s\n", note.Title)
	fmt.Printf("Tags:       %s\n", strings.Join(note.Tags, " "))
	fmt.Printf("Remix idea: %s\n", note.RemixIdea)
	if len(note.VideoScript) > 0 {
		fmt.Printf("Script:     %d scenes\n", len(note.VideoScript))
	}
	fmt.Printf("\nRemix it with:\n  trendremix remix %s --topic \"your new topic\"\n", note.ID)
	return nil
}
