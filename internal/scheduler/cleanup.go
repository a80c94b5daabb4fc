// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/resumoteca/resumoteca/internal/config"
	"github.com/resumoteca/resumoteca/internal/tasks"
)

// CleanupScheduler periodically enqueues maintenance tasks: orphan taxonomy
// cleanup and audit event retention.
type CleanupScheduler struct {
	taskClient     *tasks.Client
	config         config.Cleanup
	retentionDays  int
	keepCategories []string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a scheduler. keepCategories lists category
// names protected from orphan deletion.
func NewCleanupScheduler(taskClient *tasks.Client, cfg config.Cleanup, retentionDays int, keepCategories []string) *CleanupScheduler {
	return &CleanupScheduler{
		taskClient:     taskClient,
		config:         cfg,
		retentionDays:  retentionDays,
		keepCategories: keepCategories,
		cron:           cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.enqueueCleanup()
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule '%s': %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cleanup scheduler: started with schedule '%s'", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cleanup scheduler: stopped")
}

// RunNow enqueues the cleanup tasks immediately.
func (s *CleanupScheduler) RunNow() error {
	return s.enqueueCleanup()
}

// IsRunning returns whether the scheduler is active.
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur.
func (s *CleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CleanupScheduler) enqueueCleanup() error {
	if s.taskClient == nil {
		return fmt.Errorf("task client not configured")
	}

	_, err := s.taskClient.Add(tasks.CleanupOrphanTaxonomyTask{
		KeepCategories: s.keepCategories,
	}).Save()
	if err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue taxonomy cleanup: %v", err)
		return err
	}

	_, err = s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.retentionDays,
	}).Save()
	if err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue audit cleanup: %v", err)
		return err
	}

	return nil
}
