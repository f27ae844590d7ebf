package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/elcappfet/menuapi/internal/app"
	"github.com/elcappfet/menuapi/internal/fetch"
	"github.com/elcappfet/menuapi/internal/imagegen"
	"github.com/elcappfet/menuapi/internal/parse"
	"github.com/elcappfet/menuapi/internal/server"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		addr         string
		configPath   string
		menuURL      string
		fetchTimeout time.Duration
		imageBase    string
		imageModel   string
		imageKey     string
		cacheTTL     time.Duration
		verbose      bool
	)

	flag.StringVar(&addr, "addr", "", "Listen address, e.g. :8000")
	flag.StringVar(&configPath, "config", "", "Path to YAML/JSON config file")
	flag.StringVar(&menuURL, "menu.url", "", "Menu page URL to fetch and parse")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Timeout for the menu page fetch")
	flag.StringVar(&imageBase, "images.base", "", "OpenAI-compatible base URL for image generation")
	flag.StringVar(&imageModel, "images.model", "", "Image model name")
	flag.StringVar(&imageKey, "images.key", "", "API key for image generation (empty disables images)")
	flag.DurationVar(&cacheTTL, "images.cacheTTL", 0, "TTL for cached images (e.g. 2h)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		Addr:         addr,
		MenuURL:      menuURL,
		FetchTimeout: fetchTimeout,
		ImageBaseURL: imageBase,
		ImageModel:   imageModel,
		ImageAPIKey:  imageKey,
		CacheTTL:     cacheTTL,
		Verbose:      verbose,
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("lecture du fichier de configuration")
		}
		app.MergeFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)
	cfg.Defaults()

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	fetcher := &fetch.Client{Timeout: cfg.FetchTimeout}
	parser := parse.New(cfg.MenuURL)

	var generator *imagegen.Generator
	if cfg.ImageAPIKey != "" {
		oc := openai.DefaultConfig(cfg.ImageAPIKey)
		if cfg.ImageBaseURL != "" {
			oc.BaseURL = cfg.ImageBaseURL
		}
		generator = imagegen.NewGenerator(openai.NewClientWithConfig(oc), cfg.ImageModel, cfg.CacheTTL)
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("génération d'images activée")
	} else {
		log.Warn().Msg("aucune clé API - génération d'images désactivée")
	}

	srv := server.New(fetcher, parser, cfg.MenuURL, generator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("arrêt du serveur")
	}
	log.Info().Msg("serveur arrêté")
}
