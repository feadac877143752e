package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/groblegark/slidecast/internal/archive"
	"github.com/groblegark/slidecast/internal/auth"
	"github.com/groblegark/slidecast/internal/config"
	"github.com/groblegark/slidecast/internal/events"
	"github.com/groblegark/slidecast/internal/server"
	"github.com/groblegark/slidecast/internal/store"
	"github.com/groblegark/slidecast/internal/store/memory"
	"github.com/groblegark/slidecast/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the slidecast server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't build a client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Durable store: Postgres when configured, in-memory otherwise.
		var st store.Store
		if cfg.DatabaseURL != "" {
			st, err = postgres.New(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			logger.Info("postgres store enabled")
		} else {
			st = memory.New()
			logger.Info("in-memory store enabled (SLIDECAST_DATABASE_URL not set)")
		}

		// Event bus: NATS when configured, in-process otherwise.
		var publisher events.Publisher
		var subscriber events.Subscriber
		var sharedBus bool
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				pub.Close()
				st.Close()
				return err
			}
			publisher, subscriber = pub, sub
			logger.Info("nats bus enabled", "nats_url", cfg.NATSURL)
		} else {
			bus := events.NewMemoryBus()
			publisher, subscriber = bus, bus
			sharedBus = true
			logger.Info("in-process bus enabled (SLIDECAST_NATS_URL not set)")
		}

		// Authorized predicate: either credential mode satisfies it.
		var modes auth.AnyOf
		if cfg.AuthSecret != "" {
			modes = append(modes, auth.Token{Secret: cfg.AuthSecret})
		}
		if cfg.SessionVerifyURL != "" {
			modes = append(modes, auth.NewSession(cfg.SessionVerifyURL))
			logger.Info("session identity delegation enabled", "verify_url", cfg.SessionVerifyURL)
		}
		var authorizer auth.Authorizer = modes
		if len(modes) == 0 {
			authorizer = auth.Open{}
			logger.Warn("auth disabled (no SLIDECAST_AUTH_SECRET or SLIDECAST_SESSION_VERIFY_URL)")
		}

		deckServer := server.NewDeckServer(st, publisher, subscriber, authorizer, server.Options{
			ReactionTTL:       cfg.ReactionTTL,
			HeartbeatInterval: cfg.HeartbeatInterval,
			Logger:            logger,
		})

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: deckServer.NewHTTPHandler(),
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Archive scheduler, when a destination is configured.
		var scheduler *archive.Scheduler
		if cfg.ArchiveInterval > 0 && cfg.ArchiveS3Bucket != "" {
			s3Dest, err := archive.NewS3Destination(
				context.Background(),
				cfg.ArchiveS3Bucket,
				cfg.ArchiveS3Key,
				cfg.ArchiveS3Region,
				cfg.ArchiveS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 archive destination", "err", err)
			} else {
				scheduler = archive.NewScheduler(st, []archive.Destination{s3Dest}, cfg.ArchiveInterval, logger)
				scheduler.Start()
				logger.Info("archive scheduler started",
					"interval", cfg.ArchiveInterval,
					"bucket", cfg.ArchiveS3Bucket,
					"key", cfg.ArchiveS3Key,
				)
			}
		}

		logger.Info("slidecast server started", "http_addr", cfg.HTTPAddr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("archive scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if !sharedBus {
			if err := subscriber.Close(); err != nil {
				logger.Error("error closing subscriber", "err", err)
			}
		}
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
