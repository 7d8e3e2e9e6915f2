package main

import (
	"context"
	"os"

	mcpgo "github.com/mark3labs/mcp-go/server"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/mcpserver"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/server"
)

func main() {
	ctx := context.Background()
	log := logging.NewLogger(ctx)

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Errorf("configuration error: %v", err)
		os.Exit(1)
	}

	s := mcpserver.New(server.NewPipeline(cfg))
	if err := mcpgo.ServeStdio(s); err != nil {
		log.Errorf("mcp server stopped: %v", err)
		os.Exit(1)
	}
}
