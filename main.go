package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/uiforge/pkg/config"
	"github.com/chazu/uiforge/pkg/debug"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		log.Printf("config: %v; using defaults for invalid values", err)
	}
	debug.SetEnabled(cfg.Debug)

	app := NewApp(cfg)

	err = wails.Run(&options.App{
		Title:  "UI Forge",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 15, G: 23, B: 42, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
