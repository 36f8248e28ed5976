package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/benbeisheim/falconchess-backend/internal/controller"
	"github.com/benbeisheim/falconchess-backend/internal/service"
)

type config struct {
	addr          string
	allowOrigins  string
	logLevel      string
	logFormat     string
	accessLog     bool
	matchInterval time.Duration
}

func parseConfig() config {
	var cfg config
	flag.StringVar(&cfg.addr, "addr", getenv("FALCONCHESS_ADDR", ":3000"), "listen address")
	flag.StringVar(&cfg.allowOrigins, "allow-origins", getenv("FALCONCHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	flag.StringVar(&cfg.logLevel, "log-level", getenv("FALCONCHESS_LOG_LEVEL", "info"), "debug, info, warn, error or fatal")
	flag.StringVar(&cfg.logFormat, "log-format", getenv("FALCONCHESS_LOG_FORMAT", "text"), "text, json or cli")
	flag.BoolVar(&cfg.accessLog, "access-log", getenb("FALCONCHESS_ACCESS_LOG", true), "log every HTTP request")
	flag.DurationVar(&cfg.matchInterval, "match-interval", getdur("FALCONCHESS_MATCH_INTERVAL", time.Second), "matchmaking tick")
	flag.Parse()
	return cfg
}

func setupLogging(cfg config) {
	switch cfg.logFormat {
	case "json":
		log.SetHandler(json.New(os.Stderr))
	case "cli":
		log.SetHandler(cli.New(os.Stderr))
	default:
		log.SetHandler(text.New(os.Stderr))
	}
	level, err := log.ParseLevel(cfg.logLevel)
	if err != nil {
		log.WithError(err).WithField("level", cfg.logLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func main() {
	cfg := parseConfig()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)
	go gameManager.RunMatchmaking(ctx, cfg.matchInterval)

	app := controller.NewApp(gameService, controller.AppConfig{
		AllowOrigins: cfg.allowOrigins,
		AccessLog:    cfg.accessLog,
	})

	go func() {
		<-ctx.Done()
		log.Info("received shutdown signal")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.WithError(err).Error("HTTP server shutdown")
		}
	}()

	log.WithField("addr", cfg.addr).Info("HTTP listening")
	if err := app.Listen(cfg.addr); err != nil {
		log.WithError(err).Fatal("HTTP server end")
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
