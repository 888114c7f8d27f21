package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ibeckermayer/mockshot/internal/app"
	"github.com/ibeckermayer/mockshot/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Get key-value in .env file
	godotenv.Load()

	// Load or create configuration
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run - create default config
			cfg = config.Default()
			if err := cfg.Save(); err != nil {
				log.Printf("Warning: could not save default config: %v", err)
			} else {
				path, _ := config.ConfigPath()
				log.Printf("Created default config at: %s", path)
			}
		} else {
			log.Printf("Warning: could not load config: %v (using defaults)", err)
			cfg = config.Default()
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SIGHUP reloads the config file
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := a.ReloadConfig(); err != nil {
				log.Printf("Failed to reload config: %v", err)
			}
		}
	}()

	log.Println("mockshot starting...")

	if err := a.Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
