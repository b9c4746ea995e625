package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/questagent/internal/agent"
	"codeberg.org/mutker/questagent/internal/config"
	"codeberg.org/mutker/questagent/internal/delivery"
	"codeberg.org/mutker/questagent/internal/errors"
	"codeberg.org/mutker/questagent/internal/journal"
	"codeberg.org/mutker/questagent/internal/license"
	"codeberg.org/mutker/questagent/internal/logger"
	"codeberg.org/mutker/questagent/internal/pid"
	"codeberg.org/mutker/questagent/internal/probe"
	"codeberg.org/mutker/questagent/internal/sink"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	config.ApplyLogLevel(cfg)
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		if errors.HasCode(err, errors.ErrAlreadyRunning) {
			// A wedged device call can make a pass outlive the schedule;
			// skipping beats racing the previous pass on the same log file.
			logger.Warn().Msg("Previous pass still running; skipping this invocation")
			return
		}
		logger.Fatal().Err(err).Msg("failed to acquire PID lock")
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove PID file")
		}
	}()

	journalRec, err := journal.NewService(journal.Config{
		DBPath:  cfg.JournalDB,
		Enabled: cfg.Journal,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize delivery journal")
	}
	defer journalRec.Close()

	deliveryClient, err := delivery.New(delivery.Config{
		URL:       cfg.CollectorURL,
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
		Timeout:   delivery.DefaultConfig().Timeout,
		Retries:   delivery.DefaultConfig().Retries,
	}, journalRec)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize delivery client")
	}

	localSink, err := sink.New(cfg.LogDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize local sink")
	}

	sources := agent.Sources{
		Devices: probe.NewADB(cfg.ADBPath),
		Audio:   probe.NewPactl(),
		Board:   probe.NewBoardConfigFile(cfg.BoardConfig),
		Remote:  probe.NewRemoteTools(),
		Station: probe.NewStationFile(cfg.StationFile),
		Host:    probe.NewHost(),
	}

	a := agent.New(cfg, sources, localSink, deliveryClient, license.NewClient(cfg.LicenseURL))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if cfg.Interval == 0 {
		if err := a.Pass(ctx); err != nil {
			logger.Error().Err(err).Msg("telemetry pass failed")
		}
		return
	}

	if err := loop(ctx, a); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
}

func loop(ctx context.Context, a *agent.Agent) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("Daemon mode activated")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.Pass(ctx); err != nil {
				logger.Error().Err(err).Msg("telemetry pass failed")
			}
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
