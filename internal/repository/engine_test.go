package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/matching"
	"github.com/oggyb/muzz-match/internal/repository"
)

// setupFileDB opens a file-backed SQLite DB with a real connection pool, so
// concurrent transactions contend the way they do on a server database.
func setupFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "votes.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

func newStoreEngine(gdb *gorm.DB) *matching.Engine {
	return matching.NewEngine(matching.Dependencies{
		Votes:      repository.NewVoteRepository(gdb),
		Exclusions: repository.NewExclusionRepository(gdb),
		Candidates: repository.NewCandidateRepository(gdb),
		Profiles:   repository.NewProfileRepository(gdb),
	}, matching.Config{
		CooldownWindow: testCooldown,
		ResultCap:      5,
	})
}

func TestEngineVote_ConcurrentKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	gdb := setupFileDB(t)
	seedProfile(t, gdb, 1, withGender("male"))
	seedProfile(t, gdb, 2)

	e := newStoreEngine(gdb)

	const voters = 20
	errs := make(chan error, voters)
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(liked bool) {
			defer wg.Done()
			_, err := e.Vote(ctx, 1, 2, liked)
			errs <- err
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var count int64
	require.NoError(t, gdb.Model(&db.Vote{}).Where("voter_id = ? AND target_id = ?", 1, 2).Count(&count).Error)
	assert.Equal(t, int64(1), count, "concurrent votes on one pair share a single active row")
}

func TestEngineVote_MutualLikeOnStore(t *testing.T) {
	ctx := context.Background()
	gdb := setupFileDB(t)
	seedProfile(t, gdb, 1, withGender("male"))
	seedProfile(t, gdb, 2)

	e := newStoreEngine(gdb)

	matched, err := e.Vote(ctx, 1, 2, true)
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = e.Vote(ctx, 2, 1, true)
	require.NoError(t, err)
	assert.True(t, matched)

	ids, err := e.BidirectionalMatchedUsers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)
}
