package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-match/internal/db"
)

var (
	// fixed clock so cooldown arithmetic in tests is exact
	testNow      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testCooldown = 30 * 24 * time.Hour
	testSince    = testNow.Add(-testCooldown)
)

// setupTestDB opens an isolated in-memory SQLite DB per test.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

type profileOpt func(*db.Profile)

func blocked(p *db.Profile)      { p.Blocked = true }
func unregistered(p *db.Profile) { p.Registered = false }
func noUsername(p *db.Profile)   { p.Username = nil }
func emptyUsername(p *db.Profile) {
	empty := ""
	p.Username = &empty
}

func withGender(g string) profileOpt { return func(p *db.Profile) { p.Gender = g } }
func withAge(age int) profileOpt     { return func(p *db.Profile) { p.Age = age } }
func withGoal(goal string) profileOpt {
	return func(p *db.Profile) { p.GoalRelationship = goal }
}

// seedProfile inserts an eligible profile with wide-open filters, then applies opts.
func seedProfile(t *testing.T, gdb *gorm.DB, id uint64, opts ...profileOpt) db.Profile {
	t.Helper()

	username := fmt.Sprintf("user%d", id)
	p := db.Profile{
		ID:                     id,
		Name:                   fmt.Sprintf("User %d", id),
		Username:               &username,
		Registered:             true,
		Gender:                 "female",
		Age:                    30,
		Height:                 170,
		GoalRelationship:       "long_term",
		FilterGender:           "any",
		FilterAgeLowerBound:    18,
		FilterAgeUpperBound:    99,
		FilterHeightLowerBound: 100,
		FilterHeightUpperBound: 250,
	}
	for _, opt := range opts {
		opt(&p)
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

// seedVote inserts a raw vote row at the given time.
func seedVote(t *testing.T, gdb *gorm.DB, voter, target uint64, liked bool, at time.Time) {
	t.Helper()

	var round uint32
	require.NoError(t, gdb.Model(&db.Vote{}).
		Select("COALESCE(MAX(round), 0)").
		Where("voter_id = ? AND target_id = ?", voter, target).
		Scan(&round).Error)

	require.NoError(t, gdb.Create(&db.Vote{
		VoterID:   voter,
		TargetID:  target,
		Round:     round + 1,
		Liked:     liked,
		CreatedAt: at,
	}).Error)
}

// ago returns a time d before testNow.
func ago(d time.Duration) time.Time { return testNow.Add(-d) }
