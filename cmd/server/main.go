package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"nutrigo/internal/ai"
	"nutrigo/internal/config"
	"nutrigo/internal/corpus"
	"nutrigo/internal/db"
	"nutrigo/internal/handlers"
	applog "nutrigo/internal/log"
	"nutrigo/internal/nutrition"
	"nutrigo/internal/server"
	"nutrigo/internal/vision"
)

// serverLifecycle abstracts the HTTP server so run can be exercised with a
// stub.
type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc    = config.Load
	setLogLevelFunc   = applog.SetLevel
	setLogFormatFunc  = applog.SetFormat
	configureDatabase = db.Configure
	newAIClientFunc   = func(cfg ai.Config) (*ai.Client, error) { return ai.NewClient(cfg) }
	newServerFunc     = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env file: %v", err)
	}
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Log.Level); err != nil {
		log.Printf("invalid log level %q: %v", cfg.Log.Level, err)
		return 1
	}
	setLogFormatFunc(cfg.Log.Format)

	resolver := &nutrition.Resolver{CallTimeout: cfg.OpenAI.Timeout}

	if cfg.Database.URL != "" {
		conn, err := configureDatabase(cfg.Database)
		if err != nil {
			log.Printf("failed to initialize database: %v", err)
			return 1
		}
		repo, err := corpus.New(conn)
		if err != nil {
			log.Printf("failed to build corpus repository: %v", err)
			return 1
		}
		resolver.Corpus = repo
		applog.Info(ctx, "corpus tier enabled")
	} else {
		applog.Info(ctx, "no database configured, corpus tier disabled")
	}

	var analyzer handlers.MealAnalyzer
	if cfg.OpenAI.APIKey != "" {
		client, err := newAIClientFunc(ai.Config{
			APIKey:      cfg.OpenAI.APIKey,
			Model:       cfg.OpenAI.Model,
			VisionModel: cfg.OpenAI.VisionModel,
			BaseURL:     cfg.OpenAI.BaseURL,
			Temperature: cfg.OpenAI.Temperature,
			Timeout:     cfg.OpenAI.Timeout,
		})
		if err != nil {
			log.Printf("failed to build openai client: %v", err)
			return 1
		}
		resolver.Generator = client
		analyzer = client
		applog.Info(ctx, "generated tier and image analysis enabled", "model", cfg.OpenAI.Model)
	} else {
		applog.Info(ctx, "no api key configured, generated tier and image analysis disabled")
	}

	srv, err := newServerFunc(server.Config{
		Addr:          cfg.Server.Addr,
		Resolver:      resolver,
		Analyzer:      analyzer,
		AnalysisCache: vision.NewAnalysisCache(cfg.Cache.TTL, cfg.Cache.Capacity),
	})
	if err != nil {
		log.Printf("failed to build server: %v", err)
		return 1
	}

	startErrCh := make(chan error, 1)
	go func() {
		log.Printf("starting http server on %s", cfg.Server.Addr)
		startErrCh <- srv.Start()
	}()

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-startErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server encountered an error: %v", err)
			return 1
		}
	case <-sigCh:
		log.Println("shutting down http server")
		if err := srv.Stop(); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
			return 1
		}
	}

	return 0
}
