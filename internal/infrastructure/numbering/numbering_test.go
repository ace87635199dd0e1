package numbering

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestFormat(t *testing.T) {
	at := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	got, err := Format("INV-{YYYY}{MM}{DD}-{SEQ6}", at, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260209-000042", got)

	got, err = Format(DefaultFormat, at, 7)
	require.NoError(t, err)
	assert.Equal(t, "INV-000007", got)

	_, err = Format("INV-{SEQ6}", at, 0)
	assert.Error(t, err)
	_, err = Format("INV-{BRANCH}-{SEQ}", at, 1)
	assert.Error(t, err)
	assert.Error(t, ValidateFormat("INV-{YYYY}"))
}

func TestSequenceSourceIncrementsPerBranch(t *testing.T) {
	src, err := NewSequenceSource(newTestDB(t), "")
	require.NoError(t, err)
	ctx := context.Background()
	branchA, branchB := uuid.New(), uuid.New()

	for i := 1; i <= 3; i++ {
		n, err := src.NextNumber(ctx, branchA)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%06d", i), n)
	}

	n, err := src.NextNumber(ctx, branchB)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", n)
}

func TestSequenceSourceNeverRepeatsUnderConcurrency(t *testing.T) {
	src, err := NewSequenceSource(newTestDB(t), "")
	require.NoError(t, err)
	branch := uuid.New()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := src.NextNumber(context.Background(), branch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			seen[n] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, seen, workers)
	assert.True(t, seen[fmt.Sprintf("INV-%06d", workers)])
}

func TestSnowflakeSourceIsIncreasing(t *testing.T) {
	src, err := NewSnowflakeSource(3, "")
	require.NoError(t, err)

	prev := ""
	for i := 0; i < 50; i++ {
		n, err := src.NextNumber(context.Background(), uuid.Nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(n, "INV-"))
		assert.Greater(t, n, prev)
		prev = n
	}

	_, err = NewSnowflakeSource(5000, "")
	assert.Error(t, err)
}
