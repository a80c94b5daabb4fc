package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanTaxonomyCleaner deletes categories and themes no book references.
// Categories in the protected list survive even when unreferenced.
type OrphanTaxonomyCleaner interface {
	DeleteOrphanCategories(keep []string) (int64, error)
	DeleteOrphanThemes() (int64, error)
}

// CleanupOrphanTaxonomyTask removes categories and themes that no longer
// have any associated books.
type CleanupOrphanTaxonomyTask struct {
	// KeepCategories lists category names never deleted, typically the
	// default site categories.
	KeepCategories []string `json:"keep_categories"`
}

// Config returns the queue configuration for taxonomy cleanup tasks.
func (t CleanupOrphanTaxonomyTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_taxonomy",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanTaxonomyProcessor creates a processor function for
// CleanupOrphanTaxonomyTask.
func CleanupOrphanTaxonomyProcessor(cleaner OrphanTaxonomyCleaner) backlite.QueueProcessor[CleanupOrphanTaxonomyTask] {
	return func(ctx context.Context, task CleanupOrphanTaxonomyTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan taxonomy cleaner not configured")
		}

		categories, err := cleaner.DeleteOrphanCategories(task.KeepCategories)
		if err != nil {
			return fmt.Errorf("cleanup orphan categories: %w", err)
		}

		themes, err := cleaner.DeleteOrphanThemes()
		if err != nil {
			return fmt.Errorf("cleanup orphan themes: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan categories and %d orphan themes", categories, themes)
		return nil
	}
}

// NewCleanupOrphanTaxonomyQueue creates a backlite queue for taxonomy cleanup.
func NewCleanupOrphanTaxonomyQueue(cleaner OrphanTaxonomyCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanTaxonomyProcessor(cleaner))
}
