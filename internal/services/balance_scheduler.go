package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/database"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"

	"github.com/robfig/cron/v3"
)

// BalanceScheduler keeps derived balance data warm: a nightly full refresh
// of every tenant's cached summary plus a half-hourly database keep-alive
// ping (the hosted database pauses idle projects otherwise).
type BalanceScheduler struct {
	balances *BalanceService
	cron     *cron.Cron
	running  bool
}

func NewBalanceScheduler(balances *BalanceService) *BalanceScheduler {
	return &BalanceScheduler{
		balances: balances,
		cron:     cron.New(),
	}
}

// Start registers the jobs and starts the scheduler.
func (s *BalanceScheduler) Start() error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	appLogger := logger.GetLogger()

	// nightly, after the system month may have advanced past a due date
	if _, err := s.cron.AddFunc("5 0 * * *", s.refreshAll); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/30 * * * *", s.keepAlive); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	appLogger.Info("Balance scheduler started")
	return nil
}

// Stop stops the scheduler.
func (s *BalanceScheduler) Stop() {
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	logger.GetLogger().Info("Balance scheduler stopped")
}

func (s *BalanceScheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	refreshed, err := s.balances.RefreshAll(ctx)
	if err != nil {
		logger.GetLogger().Errorf("Nightly balance refresh failed: %v", err)
		return
	}
	logger.GetLogger().Infof("Nightly balance refresh completed for %d tenants", refreshed)
}

func (s *BalanceScheduler) keepAlive() {
	if err := database.Ping(); err != nil {
		logger.GetLogger().Errorf("Database keep-alive ping failed: %v", err)
		return
	}
	logger.GetLogger().Debug("Database keep-alive ping successful")
}
