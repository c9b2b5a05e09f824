package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chuanjin/toonbench/internal/config"
	"github.com/chuanjin/toonbench/internal/httpapi"
	"github.com/chuanjin/toonbench/internal/logger"
	"github.com/chuanjin/toonbench/internal/mcp"
	"github.com/chuanjin/toonbench/internal/parser"
	"github.com/gin-gonic/gin"
	goFlags "github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if config.IsErrOfType(err, goFlags.ErrHelp) {
		fmt.Println(err)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := logger.Init(cfg.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := parser.NewDefaultRegistry()
	if _, err := parser.NewScriptLoader(registry).LoadDir(cfg.SeedsDir); err != nil {
		logger.Fatal("Failed to load scripted formats", zap.String("dir", cfg.SeedsDir), zap.Error(err))
	}
	logger.Info("Formats ready", zap.Strings("formats", registry.Formats()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeMCP:
		err = mcp.NewServer(registry, version).Run(ctx)
	default:
		err = httpapi.NewServer(registry, cfg.MaxBodyBytes).ListenAndServe(ctx, cfg.Addr)
	}
	if err != nil {
		logger.Error("Server stopped with error", zap.String("mode", cfg.Mode), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
