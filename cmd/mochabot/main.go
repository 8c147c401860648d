package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurora9161/mochabot/internal/bot"
	"github.com/aurora9161/mochabot/internal/config"
	v "github.com/aurora9161/mochabot/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %s v%s...", v.AppName, v.AppVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	b, err := bot.New(cfg)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	if err := b.Start(ctx); err != nil {
		log.Fatal("[ERR] ", err)
	}
	defer b.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] " + v.AppName + " exited cleanly")
}
