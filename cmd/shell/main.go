package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cask-games/marquee/pkg/api"
	"github.com/cask-games/marquee/pkg/config"
	"github.com/cask-games/marquee/pkg/content"
	"github.com/cask-games/marquee/pkg/gate"
	"github.com/cask-games/marquee/pkg/log"
	"github.com/cask-games/marquee/pkg/shell"
	"github.com/cask-games/marquee/pkg/surface"
	"github.com/cask-games/marquee/pkg/theme"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level override")
	flag.Parse()

	if *configPath == "" {
		log.Warn("No config file given; using defaults")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn("Failed to load config: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel))
	log.Info("Log level set to %s", parsedLogLevel)

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defaultTheme, _ := theme.ParseTheme(cfg.DefaultTheme)
	themeController := theme.NewController(defaultTheme)
	onboarding := gate.New()

	urls := make(map[content.Variant]string, len(cfg.Variants))
	for name, url := range cfg.Variants {
		urls[content.Variant(name)] = url
	}
	var store content.Store = content.NewHTTPStore(content.NewHTTPStoreOptions{URLs: urls})

	switch cfg.Cache.Backend {
	case "none":
	case "memory":
		store = content.NewCachingStore(store, content.NewInMemoryCache())
	case "sqlite":
		cache, err := content.NewSQLiteCache(ctx, cfg.Cache.Path)
		if err != nil {
			panic(fmt.Sprintf("Failed to create sqlite content cache: %v", err))
		}
		defer cache.Close(ctx)
		store = content.NewCachingStore(store, cache)
	case "postgres":
		cache, err := content.NewPostgresCache(ctx, cfg.Cache.DSN)
		if err != nil {
			panic(fmt.Sprintf("Failed to create postgres content cache: %v", err))
		}
		defer cache.Close(ctx)
		store = content.NewCachingStore(store, cache)
	}

	controller := shell.NewController(shell.NewControllerOptions{
		Store:       store,
		Channel:     surface.NewChannel(),
		Theme:       themeController,
		Gate:        onboarding,
		SettleDelay: cfg.SettleDelay(),
	})
	go controller.Run(ctx)
	controller.SelectVariant(content.Variant(cfg.DefaultVariant))

	server := api.NewShellServer(api.NewShellServerOptions{
		Addr:  cfg.ListenAddr,
		Shell: controller,
	})
	go server.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop shell server: %v", err)
	}
}
