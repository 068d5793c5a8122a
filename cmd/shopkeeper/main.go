package main

import (
	"context"
	stdlog "log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"

	"github.com/commercebot/shopkeeper/internal/ledger/application"
	"github.com/commercebot/shopkeeper/internal/ledger/infrastructure/discord"
	"github.com/commercebot/shopkeeper/internal/ledger/infrastructure/file"
	ledgerhttp "github.com/commercebot/shopkeeper/internal/ledger/infrastructure/http"
	ledgerkafka "github.com/commercebot/shopkeeper/internal/ledger/infrastructure/kafka"
	"github.com/commercebot/shopkeeper/pkg/idempotency"
	"github.com/commercebot/shopkeeper/pkg/logging"
	"github.com/commercebot/shopkeeper/pkg/shutdown"
)

// Config is sourced from environment variables (loaded from .env for local
// runs). Kafka and Redis are optional; leaving their addresses empty
// disables the order-event sink and interaction dedupe respectively.
type Config struct {
	DiscordToken string     `envconfig:"DISCORD_BOT_TOKEN" required:"true"`
	DataFile     string     `envconfig:"DATA_FILE" default:"bot_data.json"`
	HTTPAddr     string     `envconfig:"HTTP_ADDR" default:":8080"`
	KafkaAddr    string     `envconfig:"KAFKA_ADDR"`
	OrderTopic   string     `envconfig:"ORDER_TOPIC" default:"shopkeeper.orders"`
	RedisAddr    string     `envconfig:"REDIS_ADDR"`
	LogLevel     slog.Level `envconfig:"LOG_LEVEL" default:"info"`
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdlog.Printf("warning: could not load .env file: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	log := logging.New(cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store := file.NewStore(log, cfg.DataFile)

	var notifier application.Notifier
	if cfg.KafkaAddr != "" {
		kn := ledgerkafka.NewNotifier(log, cfg.KafkaAddr, cfg.OrderTopic)
		defer func() { _ = kn.Close() }()
		notifier = kn
		log.Info("order event sink enabled", "addr", cfg.KafkaAddr, "topic", cfg.OrderTopic)
	}

	ledger, err := application.Open(ctx, log, store, notifier)
	if err != nil {
		log.Error("ledger init failed", "path", cfg.DataFile, "err", err)
		os.Exit(1)
	}

	var idem *idempotency.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
		idem = idempotency.NewStore(rdb, 10*time.Minute)
		log.Info("interaction dedupe enabled", "addr", cfg.RedisAddr)
	}

	bot, err := discord.New(log, cfg.DiscordToken, ledger, idem)
	if err != nil {
		log.Error("bot setup failed", "err", err)
		os.Exit(1)
	}
	if err := bot.Open(); err != nil {
		log.Error("gateway connect failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = bot.Close() }()

	// Keep-alive HTTP server, independent of the ledger.
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      ledgerhttp.NewHandler().Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("shopkeeper shutdown complete")
}
