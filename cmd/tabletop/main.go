package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tatianab/tabletop-dm/internal/config"
	"github.com/tatianab/tabletop-dm/internal/game"
	"github.com/tatianab/tabletop-dm/internal/narrator"
	"github.com/tatianab/tabletop-dm/internal/settings"
	"github.com/tatianab/tabletop-dm/internal/tui"
)

func main() {
	loadName := flag.String("load", "", "resume a saved session by name")
	listSaves := flag.Bool("list", false, "list saved sessions and exit")
	flag.Parse()

	_ = godotenv.Load() // a missing .env is fine

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	game.SaveDir = cfg.SaveDir()
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Printf("Error creating data dir: %v\n", err)
		os.Exit(1)
	}

	if *listSaves {
		names, err := game.ListSessions()
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	saveName := "adventure"
	session := game.NewSession()
	if *loadName != "" {
		session, err = game.LoadSession(*loadName)
		if err != nil {
			fmt.Printf("Error loading session %q: %v\n", *loadName, err)
			os.Exit(1)
		}
		saveName = *loadName
	}

	store, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		fmt.Printf("Error opening settings: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	client, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		fmt.Printf("Error creating narrator client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	locale := game.Locale(cfg.Language)
	exchange := narrator.NewExchange(session, client, narrator.Options{
		Locale:       locale,
		Timeout:      cfg.Timeout,
		SystemPrompt: store.SystemPrompt,
	})

	err = tui.Run(tui.Options{
		Session:  session,
		Exchange: exchange,
		Settings: store,
		Locale:   locale,
		SaveName: saveName,
		Debug:    cfg.Debug,
		DataDir:  cfg.DataDir,
	})
	if err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
