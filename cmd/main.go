package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/handlers"
	"github.com/ukydev/fleet-maintenance/internal/notify"
	"github.com/ukydev/fleet-maintenance/internal/settings"
	"github.com/ukydev/fleet-maintenance/internal/store"
)

const shutdownTimeout = 15 * time.Second

// setupLogging applies the configured level and format to the standard logger.
func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// newSettingsStorage opens the configured settings backend. The returned
// function releases it.
func newSettingsStorage(ctx context.Context, cfg *config.Config) (settings.Storage, func(), error) {
	switch cfg.SettingsBackend {
	case config.BackendFile:
		log.WithField("path", cfg.SettingsFile).Info("Using file settings storage")
		return settings.NewFileStorage(cfg.SettingsFile), func() {}, nil
	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect settings database: %w", err)
		}
		log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
		collection := client.Database(cfg.MongoDB).Collection(db.SettingsCollectionName)
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("MongoDB disconnect failed")
			}
		}
		return &db.MongoSettingsStorage{Collection: collection}, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown settings backend %q", cfg.SettingsBackend)
}

// newNotifier connects to the MQTT broker, or returns a no-op notifier when none is configured.
func newNotifier(cfg *config.Config) (notify.Notifier, func(), error) {
	if cfg.MQTTBroker == "" {
		log.Info("No MQTT broker configured, maintenance events are not published")
		return notify.Nop{}, func() {}, nil
	}
	publisher, disconnect, err := notify.ConnectMQTT(notify.MQTTOptions{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Topic:    cfg.MQTTTopic,
		QoS:      1,
	})
	if err != nil {
		return nil, nil, err
	}
	return publisher, disconnect, nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newStore(cfg *config.Config) *store.Store {
	if !cfg.SeedData {
		return store.New(store.Seed{})
	}
	return store.New(store.DefaultSeed())
}

// newServer builds the HTTP server for cfg around the given dependencies.
func newServer(cfg *config.Config, st *store.Store, svc *settings.Service, notifier notify.Notifier, reg *prometheus.Registry) *http.Server {
	h := handlers.NewHandler(st, svc, notifier)
	router := handlers.NewRouter(h, handlers.RouterOptions{
		Registry:        reg,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	})
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	storage, closeStorage, err := newSettingsStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	svc := settings.NewService(storage)
	if _, err := svc.Load(ctx); err != nil {
		log.WithError(err).Warn("Failed to load settings, using defaults")
	}

	notifier, closeNotifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}
	defer closeNotifier()

	st := newStore(cfg)
	log.WithFields(log.Fields{
		"vehicles":    st.Vehicles.Len(),
		"items":       st.Items.Len(),
		"records":     st.Records.Len(),
		"technicians": st.Technicians.Len(),
	}).Info("Store initialised")

	srv := newServer(cfg, st, svc, notifier, newRegistry())
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
	log.Info("Server stopped")
}
