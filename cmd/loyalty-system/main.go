package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appnotify "loyalty-system/internal/app/notify"
	"loyalty-system/internal/app/server"
	"loyalty-system/internal/common/logger"
	"loyalty-system/internal/config"
	"loyalty-system/internal/connections/database"
	"loyalty-system/internal/connections/rabbitmq"
	"loyalty-system/internal/notify"
	"loyalty-system/internal/storage"
)

func main() {
	mode := flag.String("mode", "server", "server | notification-subscriber")
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	port := flag.Int("port", 0, "override http.port from the config")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	switch *mode {
	case "server":
		lg.Info("service_started", map[string]any{"service": "loyalty-system", "port": cfg.HTTP.Port, "backend": cfg.Storage.Backend})
		if err := runServer(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		client, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, nil)
			os.Exit(1)
		}
		defer client.Close()
		if err := appnotify.Run(ctx, client, logger.New("notification-subscriber")); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: server | notification-subscriber")
		os.Exit(2)
	}
}

func runServer(ctx context.Context, cfg config.Config) error {
	lg := logger.New("loyalty-system")

	var store storage.Store
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := storage.NewPGStore(db)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		store = pg
		lg.Info("postgres_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Database})
	default:
		fs, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return err
		}
		store = fs
		lg.Info("filestore_ready", map[string]any{"dir": cfg.Storage.DataDir})
	}

	var events notify.Events = notify.Noop{}
	if cfg.RabbitMQ.Enabled {
		client, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.DeclareAll(); err != nil {
			return err
		}
		events = notify.NewPublisher(client, lg)
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})
	}

	return server.Run(ctx, cfg, store, events, lg)
}
