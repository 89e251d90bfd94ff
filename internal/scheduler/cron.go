package scheduler

import (
	"context"
	"fmt"

	"github.com/cinelog/cinelog/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron           *cron.Cron
	enrichmentCtrl *controllers.EnrichmentController
	refreshHours   int
	logger         *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(enrichmentCtrl *controllers.EnrichmentController, refreshHours int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		enrichmentCtrl: enrichmentCtrl,
		refreshHours:   refreshHours,
		logger:         logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every N hours: re-attempt enrichment for movies missing metadata
	spec := fmt.Sprintf("0 */%d * * *", s.refreshHours)
	_, err := s.cron.AddFunc(spec, func() {
		s.runMetadataRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add metadata refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("refresh_hours", s.refreshHours).Info("Scheduler started")

	// Run an initial refresh immediately
	go s.runMetadataRefresh()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runMetadataRefresh executes the metadata backfill job
func (s *Scheduler) runMetadataRefresh() {
	s.logger.Debug("Running scheduled metadata refresh")
	ctx := context.Background()

	if err := s.enrichmentCtrl.RefreshMissingMetadata(ctx); err != nil {
		s.logger.WithError(err).Error("Metadata refresh job failed")
	}
}
