package cmd

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/health"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the headless health monitor",
	Long: `Polls backend health on an interval and posts webhook alerts on
degradation: one alert per healthy-to-degraded transition, then at most one
reminder per cooldown while the outage lasts. Runs until interrupted.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().Duration("interval", 0, "poll interval (default from config)")
	monitorCmd.Flags().Duration("cooldown", 0, "minimum gap between repeat alerts (default from config)")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		interval = cfg.HealthInterval()
	}
	cooldown, _ := cmd.Flags().GetDuration("cooldown")
	if cooldown <= 0 {
		cooldown = cfg.AlertCooldown()
	}

	probe := newProbe(cfg)
	monitor := health.NewMonitor(cooldown)
	alerter := health.NewAlerter(cfg.Webhook(), logger)

	if !alerter.Enabled() {
		logger.Warn("no alert webhook configured; degradations will only be logged")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	g.Add(func() error {
		return pollLoop(ctx, cfg.BackendTimeout(), interval, probe, monitor, alerter)
	}, func(error) {
		cancel()
	})

	logger.WithFields(logrus.Fields{
		"backend":  cfg.Backend.BaseURL,
		"interval": interval,
		"cooldown": cooldown,
	}).Info("health monitor started")

	err = g.Run()
	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		return nil
	}
	return err
}

func pollLoop(ctx context.Context, timeout, interval time.Duration,
	probe *health.Probe, monitor *health.Monitor, alerter *health.Alerter) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		report := probe.Check(checkCtx)
		if report.OK {
			logger.Debug("backend healthy")
		} else {
			logger.WithField("hint", report.Hint).Warn("backend degraded")
		}

		if decision := monitor.Observe(report); decision.Alert {
			alerter.Send(checkCtx, decision.Reason)
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			check()
		}
	}
}
