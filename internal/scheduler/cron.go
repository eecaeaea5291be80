package scheduler

import (
	"fmt"

	"github.com/amaumene/collectarr/internal/models"
	"github.com/amaumene/collectarr/internal/stats"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron      *cron.Cron
	db        *models.Database
	topGenres int
	logger    *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(db *models.Database, topGenres int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		db:        db,
		topGenres: topGenres,
		logger:    logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every hour: log a catalog statistics snapshot. The aggregator is a
	// pure function over the current catalog, so each run reflects all
	// CRUD mutations since the last one.
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.runStatsSnapshot()
	})
	if err != nil {
		return fmt.Errorf("failed to add stats snapshot job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Log an initial snapshot on startup
	go s.runStatsSnapshot()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runStatsSnapshot recomputes and logs catalog statistics
func (s *Scheduler) runStatsSnapshot() {
	items, err := s.db.GetAllItems()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load catalog for stats snapshot")
		return
	}

	snapshot := stats.Aggregate(items, s.topGenres)

	s.logger.WithFields(logrus.Fields{
		"total":     snapshot.Total,
		"by_type":   snapshot.ByType,
		"by_status": snapshot.ByStatus,
	}).Info("Catalog statistics snapshot")
}
