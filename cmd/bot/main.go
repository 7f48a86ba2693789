// cmd/bot/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"wabot/internal/commands"
	"wabot/internal/config"
	"wabot/internal/core"
	"wabot/internal/premium"
	"wabot/internal/session"
	"wabot/internal/storage"
	v "wabot/internal/version"
	"wabot/internal/whatsapp"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	prem, err := premium.New(cfg.PremiumAPIURL, cfg.PremiumCachePath)
	if err != nil {
		log.Fatal(err)
	}
	defer prem.Close()
	go prem.Run(ctx, cfg.PremiumRefresh)

	cooldowns := core.NewCooldownTracker()
	go core.RunCooldownSweeper(ctx, cooldowns)

	registry := core.NewRegistry(commands.All())
	sessions := session.NewStore(cfg.GameTimeout)

	bot := whatsapp.NewBot(cfg, store, registry, sessions, prem, cooldowns)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] WhatsApp bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] WhatsApp bot exited cleanly")
}
