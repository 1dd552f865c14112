package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trendremix/internal/library"
	"trendremix/internal/types"
)

// The notes and scripts commands expose the library operations (list,
// delete, move) from the shell; creation only happens through the
// deconstruct and remix flows.

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Browse and manage generated notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			for _, n := range app.Notes.Items() {
				fmt.Printf("%s  %s  [%s]  %s\n", n.ID, formatTimestamp(n.Timestamp), n.FromPlatform, n.Title)
			}
			if app.Notes.Len() == 0 {
				fmt.Println("No notes yet. Deconstruct something and remix it.")
			}
			return nil
		})
	},
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Browse and manage generated shooting scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			for _, s := range app.Scripts.Items() {
				fmt.Printf("%s  %s  [%s]  %s (%d scenes)\n", s.ID, formatTimestamp(s.Timestamp), s.FromPlatform, s.Title, len(s.Scenes))
			}
			if app.Scripts.Len() == 0 {
				fmt.Println("No scripts yet. Remix a video deconstruction to get one.")
			}
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past deconstructions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			for _, n := range app.Deconstruct.History() {
				fmt.Printf("%s  %s  [%s / %s]  %s\n", n.ID, formatTimestamp(n.Timestamp), n.Platform, n.Type, n.Title)
			}
			if len(app.Deconstruct.History()) == 0 {
				fmt.Println("No deconstructions yet. Run 'trendremix deconstruct' first.")
			}
			return nil
		})
	},
}

func init() {
	notesCmd.AddCommand(
		deleteSubCmd("note", func(app *App) deletable { return app.Notes }),
		moveSubCmd("note", func(app *App) movable { return app.Notes }),
	)
	scriptsCmd.AddCommand(
		deleteSubCmd("script", func(app *App) deletable { return app.Scripts }),
		moveSubCmd("script", func(app *App) movable { return app.Scripts }),
	)
	historyCmd.AddCommand(&cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *App) error {
				return app.Deconstruct.DeleteHistory(args[0])
			})
		},
	})
}

type deletable interface{ Delete(id string) error }

type movable interface {
	Move(id string, dir library.Direction) error
}

func deleteSubCmd(noun string, pick func(*App) deletable) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: fmt.Sprintf("Delete a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *App) error {
				return pick(app).Delete(args[0])
			})
		},
	}
}

func moveSubCmd(noun string, pick func(*App) movable) *cobra.Command {
	return &cobra.Command{
		Use:   "move [id] [up|down]",
		Short: fmt.Sprintf("Move a %s up or down in its list", noun),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := library.Down
			switch args[1] {
			case "up":
				dir = library.Up
			case "down":
			default:
				return types.Validationf("direction must be up or down, got %q", args[1])
			}
			return withApp(cmd, func(app *App) error {
				return pick(app).Move(args[0], dir)
			})
		},
	}
}

func withApp(cmd *cobra.Command, fn func(*App) error) error {
	app, err := newApp(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
