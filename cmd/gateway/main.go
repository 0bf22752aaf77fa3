// cmd/gateway/main.go
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"go.uber.org/zap"

	"github.com/yug2601/plc/internal/config"
	"github.com/yug2601/plc/internal/health"
	"github.com/yug2601/plc/internal/logging"
	"github.com/yug2601/plc/internal/poller"
	pmodbus "github.com/yug2601/plc/internal/poller/modbus"
	"github.com/yug2601/plc/internal/scheduler"
	"github.com/yug2601/plc/internal/writer"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file; environment variables override it")
	flag.Parse()

	boot := zap.NewExample()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		boot.Fatal("config load failed", zap.Error(err))
	}

	if err := config.Validate(cfg); err != nil {
		boot.Fatal("config validation failed", zap.Error(err))
	}
	config.Normalize(cfg)

	log, err := logging.New(cfg.Log)
	if err != nil {
		boot.Fatal("logger build failed", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("=== PLC GATEWAY STARTED ===",
		zap.String("target", cfg.Source.Endpoint()),
		zap.Uint8("unit_id", cfg.Source.UnitID),
		zap.Duration("upload_rate", cfg.Poll.Interval()),
		zap.Uint16("register_base", cfg.Block.RegisterBase),
		zap.Uint16("register_count", cfg.Block.RegisterCount),
		zap.Int("upper_bound", cfg.Block.UpperBound),
		zap.String("store", writer.Describe(cfg.Store)),
	)

	// --------------------
	// Liveness endpoint (independent of the loop)
	// --------------------

	if cfg.Health.Port > 0 {
		go func() {
			if err := health.Serve(ctx, cfg.Health.Port, log); err != nil {
				log.Error("health server failed", zap.Error(err))
			}
		}()
	}

	// --------------------
	// Remote store
	// --------------------

	st, err := writer.BuildStore(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal("store init failed", zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("store close failed", zap.Error(err))
		}
	}()

	// --------------------
	// Poller + scheduler
	// --------------------

	p, closePoller, err := poller.Build(*cfg)
	if err != nil {
		log.Fatal("poller build failed", zap.Error(err))
	}
	defer func() { _ = closePoller() }()

	s, err := scheduler.New(
		scheduler.Config{
			Interval: cfg.Poll.Interval(),
			Geometry: scheduler.Geometry{
				RegisterBase: int(cfg.Block.RegisterBase),
				UpperBound:   cfg.Block.UpperBound,
			},
		},
		p,
		writer.New(st),
		log,
	)
	if err != nil {
		log.Fatal("scheduler build failed", zap.Error(err))
	}

	// --------------------
	// Reachability probe (diagnostic only, never gates the loop)
	// --------------------

	if err := pmodbus.Probe(ctx, cfg.Source.Endpoint(), cfg.Source.Timeout()); err != nil {
		log.Error("PLC connection test FAILED", zap.String("target", cfg.Source.Endpoint()), zap.Error(err))
		log.Error("cannot reach PLC; check network configuration and port forwarding, continuing anyway")
	} else {
		log.Info("PLC connection test SUCCESSFUL", zap.String("target", cfg.Source.Endpoint()))
	}

	sdnotify(log, daemon.SdNotifyReady)

	s.Run(ctx)

	sdnotify(log, daemon.SdNotifyStopping)
	log.Info("gateway stopped")
}

// sdnotify is a no-op outside systemd.
func sdnotify(log *zap.Logger, state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		log.Warn("sdnotify failed", zap.String("state", state), zap.Error(err))
	}
}
