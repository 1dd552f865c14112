package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trendremix/cmd/trendremix/studio"
	"trendremix/internal/config"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd launches the interactive studio by default.
var rootCmd = &cobra.Command{
	Use:   "trendremix",
	Short: "trendremix - deconstruct viral content and remix it into your own",
	Long: `trendremix is a content-creator productivity tool.

Feed it reference content (text, links, images, short videos) and it asks a
generative model to deconstruct it into a structured breakdown: title, visual
style, spoken and on-screen text, a shot-by-shot script, and title/tag
suggestions. Pick a breakdown, give it a new topic, and it remixes the two
into a fresh note and matching shooting script.

Run without arguments to start the interactive studio interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Keep stdout clean for command output; the TUI owns the screen.
		zapCfg.OutputPaths = []string{"stderr"}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context(), logger)
		if err != nil {
			return err
		}
		defer app.Close()
		return studio.Run(cmd.Context(), studio.Deps{
			Deconstruct: app.Deconstruct,
			Remix:       app.Remix,
			Notes:       app.Notes,
			Scripts:     app.Scripts,
			Trends:      app.Trends,
			Log:         app.Log,
		})
	},
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides config and GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.trendremix/config.json)")

	rootCmd.AddCommand(deconstructCmd)
	rootCmd.AddCommand(remixCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(scriptsCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
