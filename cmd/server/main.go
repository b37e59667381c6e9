package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mmdoo7123/marketpulse/internal/app"
	"github.com/mmdoo7123/marketpulse/internal/config"
	"github.com/mmdoo7123/marketpulse/internal/cooldown"
	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/logging"
	"github.com/mmdoo7123/marketpulse/internal/sentiment"
	"github.com/mmdoo7123/marketpulse/internal/server"
	"github.com/mmdoo7123/marketpulse/internal/source"
	"github.com/mmdoo7123/marketpulse/internal/version"
)

func main() {
	cfg := setupConfig()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	info := version.Get()
	slog.Info("Starting marketpulse", "version", info.Version, "commit", info.Commit, "env", cfg.AppEnv)

	fetchers := map[domain.Source]domain.Fetcher{
		domain.SourcePosts: source.NewPostsClient(cfg.PostsAPIURL, cfg.PostsAPIToken, cfg.FetchTimeout),
		domain.SourceNews:  source.NewNewsClient(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.FetchTimeout),
	}

	cooldowns := cooldown.NewController(cfg.CooldownWindows())
	runner := cooldown.NewRunner(cooldowns, clockwork.NewRealClock())

	runnerCtx, stopRunner := context.WithCancel(context.Background())
	go runner.Run(runnerCtx)

	classifier := sentiment.NewClassifier(sentiment.Score)
	appSvc := app.NewService(fetchers, cooldowns, classifier, cfg.MaxResults)

	srv := server.NewServer(cfg, appSvc)

	done := runGracefulShutdown(srv, stopRunner)

	slog.Info("Server listening", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, stopRunner context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		stopRunner()
		close(done)
	}()

	return done
}
