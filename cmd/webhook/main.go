package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hara602/kioskSentry/internal/config"
	"github.com/Hara602/kioskSentry/internal/pihole"
	"github.com/Hara602/kioskSentry/internal/sysutil"
	"github.com/Hara602/kioskSentry/internal/webhook"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file (.toml, .yaml, .yml or .json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := sysutil.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("🛡️ Pi-hole Webhook Starting...")

	pi := pihole.New(pihole.Config{
		Docker:    cfg.PiHole.Docker,
		Container: cfg.PiHole.Container,
		Timeout:   cfg.PiHole.Timeout(),
		Log:       log.Named("pihole"),
	})

	srvCfg := webhook.DefaultConfig()
	srvCfg.Host = cfg.Webhook.Host
	srvCfg.Port = cfg.Webhook.Port
	srvCfg.ReadTimeout = cfg.Webhook.ReadTimeout()
	srvCfg.WriteTimeout = cfg.Webhook.WriteTimeout()
	srvCfg.IdleTimeout = cfg.Webhook.IdleTimeout()
	srv := webhook.New(srvCfg, pi, log.Named("webhook"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Webhook server failed", zap.Error(err))
	}
	log.Info("Shutting down...")
}
