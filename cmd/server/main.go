package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logging.NewLogger(ctx)

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Errorf("configuration error: %v", err)
		os.Exit(1)
	}

	srv, err := server.New(ctx, cfg)
	if err != nil {
		log.Errorf("startup failed: %v", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
