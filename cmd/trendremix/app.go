package main

import (
	"context"

	"go.uber.org/zap"

	"trendremix/internal/config"
	"trendremix/internal/deconstruct"
	"trendremix/internal/gateway"
	"trendremix/internal/library"
	"trendremix/internal/remix"
	"trendremix/internal/store"
	"trendremix/internal/trends"
	"trendremix/internal/types"
)

// App wires the components for one invocation: config, store, gateway,
// flows, and the two library collections.
type App struct {
	Config      *config.Config
	Log         *zap.Logger
	Store       *store.Store
	Gateway     *gateway.Gateway
	Deconstruct *deconstruct.Flow
	Remix       *remix.Flow
	Notes       *library.Collection[types.GeneratedNote]
	Scripts     *library.Collection[types.GeneratedScript]
	Trends      trends.Source
}

// newApp builds the full dependency graph. Without an API key the app still
// comes up for browsing; model calls then fail with a validation error.
func newApp(ctx context.Context, log *zap.Logger) (*App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath(), log)
	if err != nil {
		return nil, err
	}

	var client gateway.ModelClient
	if cfg.APIKey != "" {
		client, err = gateway.NewGeminiClient(ctx, cfg.APIKey, cfg.Model, log)
		if err != nil {
			st.Close()
			return nil, err
		}
	} else {
		client = gateway.NewUnconfiguredClient()
	}
	gw := gateway.New(client, log)

	deconFlow, err := deconstruct.NewFlow(gw, st, cfg.MediaDir(), log)
	if err != nil {
		st.Close()
		return nil, err
	}

	notes, err := st.Notes()
	if err != nil {
		st.Close()
		return nil, err
	}
	scripts, err := st.Scripts()
	if err != nil {
		st.Close()
		return nil, err
	}

	source, err := trends.NewStaticSource()
	if err != nil {
		st.Close()
		return nil, err
	}

	return &App{
		Config:      cfg,
		Log:         log,
		Store:       st,
		Gateway:     gw,
		Deconstruct: deconFlow,
		Remix:       remix.NewFlow(gw, log),
		Notes:       library.New(notes, st.SaveNotes),
		Scripts:     library.New(scripts, st.SaveScripts),
		Trends:      source,
	}, nil
}

// Close releases the store.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Log.Warn("failed to close store", zap.Error(err))
	}
}
