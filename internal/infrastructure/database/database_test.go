package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteMigrateAndSeed(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: "file:seedtest?mode=memory&cache=shared"}, false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, SeedCatalog(db))
	require.NoError(t, SeedCatalog(db))

	var count int64
	require.NoError(t, db.Model(&entity.Product{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultMenu)), count)

	var pizza entity.Product
	require.NoError(t, db.Preload("Variants").First(&pizza, "code = ?", "PZA-MRG").Error)
	assert.Len(t, pizza.Variants, 4)
	assert.True(t, pizza.Active)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, false)
	assert.Error(t, err)
}

// traceRecorder keeps every error gorm traces
type traceRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *traceRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *traceRecorder) Info(context.Context, string, ...interface{})  {}
func (r *traceRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *traceRecorder) Error(context.Context, string, ...interface{}) {}

func (r *traceRecorder) Trace(_ context.Context, _ time.Time, _ func() (string, int64), err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestSeedCatalogTracesNoRecordNotFound(t *testing.T) {
	db, err := NewSQLiteDB("file:seedquiet?mode=memory&cache=shared", false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	rec := &traceRecorder{}
	quiet := db.Session(&gorm.Session{Logger: rec})

	require.NoError(t, SeedCatalog(quiet))
	require.NoError(t, SeedCatalog(quiet))

	for _, err := range rec.errs {
		assert.False(t, errors.Is(err, gorm.ErrRecordNotFound), err.Error())
	}
	assert.Empty(t, rec.errs)
}
