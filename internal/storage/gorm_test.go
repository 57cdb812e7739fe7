package storage

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homeschoolhq/hq-go-api/internal/store"
)

func setupGormStorage(t *testing.T) *GormStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	gs, err := NewGormStorage(db, zerolog.Nop())
	require.NoError(t, err)
	return gs
}

func TestGormStorageRoundTrip(t *testing.T) {
	gs := setupGormStorage(t)

	_, ok, err := gs.Load(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	doc := store.Seed(time.Now())
	doc = store.AddAssignment(doc, doc.Students[0].ID, "Math", store.Assignment{Title: "Quiz", Score: 9, Max: 10, Date: "2025-01-06"})
	require.NoError(t, gs.Save(context.Background(), doc))

	loaded, ok, err := gs.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, doc, loaded)
}

func TestGormStorageUpsertsSingleRow(t *testing.T) {
	gs := setupGormStorage(t)

	first := store.Seed(time.Now())
	require.NoError(t, gs.Save(context.Background(), first))

	second := store.SetActiveStudent(first, first.Students[1].ID)
	require.NoError(t, gs.Save(context.Background(), second))

	var count int64
	require.NoError(t, gs.db.Model(&documentRow{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	loaded, ok, err := gs.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second.ActiveStudentID, loaded.ActiveStudentID)
}
