package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaxonomyCleaner struct {
	categories     int64
	themes         int64
	keptCategories []string
	err            error
}

func (f *fakeTaxonomyCleaner) DeleteOrphanCategories(keep []string) (int64, error) {
	f.keptCategories = keep
	return f.categories, f.err
}

func (f *fakeTaxonomyCleaner) DeleteOrphanThemes() (int64, error) {
	return f.themes, f.err
}

func TestCleanupOrphanTaxonomyProcessor(t *testing.T) {
	cleaner := &fakeTaxonomyCleaner{categories: 2, themes: 5}
	processor := CleanupOrphanTaxonomyProcessor(cleaner)

	err := processor(context.Background(), CleanupOrphanTaxonomyTask{
		KeepCategories: []string{"Produtividade", "Saúde"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Produtividade", "Saúde"}, cleaner.keptCategories)
}

func TestCleanupOrphanTaxonomyProcessor_Error(t *testing.T) {
	cleaner := &fakeTaxonomyCleaner{err: errors.New("db locked")}
	processor := CleanupOrphanTaxonomyProcessor(cleaner)

	err := processor(context.Background(), CleanupOrphanTaxonomyTask{})
	assert.Error(t, err)
}

func TestCleanupOrphanTaxonomyProcessor_NilCleaner(t *testing.T) {
	processor := CleanupOrphanTaxonomyProcessor(nil)

	err := processor(context.Background(), CleanupOrphanTaxonomyTask{})
	assert.Error(t, err)
}

type fakeAuditCleaner struct {
	retention time.Duration
	deleted   int64
}

func (f *fakeAuditCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, nil
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &fakeAuditCleaner{deleted: 7}
	processor := CleanupAuditEventsProcessor(cleaner)

	err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 30})

	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cleaner.retention)
}

func TestCleanupAuditEventsProcessor_DefaultRetention(t *testing.T) {
	cleaner := &fakeAuditCleaner{}
	processor := CleanupAuditEventsProcessor(cleaner)

	err := processor(context.Background(), CleanupAuditEventsTask{})

	require.NoError(t, err)
	assert.Equal(t, 90*24*time.Hour, cleaner.retention)
}

func TestTaskConfigNames(t *testing.T) {
	assert.Equal(t, "cleanup_orphan_taxonomy", CleanupOrphanTaxonomyTask{}.Config().Name)
	assert.Equal(t, "cleanup_audit_events", CleanupAuditEventsTask{}.Config().Name)
}
