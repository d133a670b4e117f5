package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-match/internal/repository"
)

func TestIneligibleIDs(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewExclusionRepository(gdb)

	seedProfile(t, gdb, 1)
	seedProfile(t, gdb, 2, blocked)
	seedProfile(t, gdb, 3, unregistered)
	seedProfile(t, gdb, 4, noUsername)
	seedProfile(t, gdb, 5, emptyUsername)

	set, err := repo.IneligibleIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3, 4, 5}, set.Sorted())
}

func TestIsIneligible(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewExclusionRepository(gdb)

	seedProfile(t, gdb, 1)
	seedProfile(t, gdb, 2, blocked)

	tests := []struct {
		name string
		id   uint64
		want bool
	}{
		{"eligible", 1, false},
		{"blocked", 2, true},
		{"unknown id", 99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.IsIneligible(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecentlyVotedIDs(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewExclusionRepository(gdb)

	seedVote(t, gdb, 1, 2, true, ago(time.Hour))
	seedVote(t, gdb, 1, 3, false, ago(time.Hour))
	seedVote(t, gdb, 1, 4, true, ago(testCooldown+time.Hour))
	seedVote(t, gdb, 5, 1, true, ago(time.Hour))

	set, err := repo.RecentlyVotedIDs(ctx, 1, testSince)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3}, set.Sorted())
}

func TestMutualMatch(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewExclusionRepository(gdb)

	seedVote(t, gdb, 1, 2, true, ago(time.Hour))
	seedVote(t, gdb, 2, 1, true, ago(time.Hour))
	seedVote(t, gdb, 1, 3, true, ago(time.Hour))
	seedVote(t, gdb, 3, 1, false, ago(time.Hour))
	seedVote(t, gdb, 1, 4, true, ago(time.Hour))
	seedVote(t, gdb, 4, 1, true, ago(testCooldown+time.Second))

	set, err := repo.MutualMatchIDs(ctx, 1, testSince)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, set.Sorted())

	ok, err := repo.IsMutualMatch(ctx, 2, 1, testSince)
	require.NoError(t, err)
	assert.True(t, ok, "match is symmetric")

	ok, err = repo.IsMutualMatch(ctx, 1, 3, testSince)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.IsMutualMatch(ctx, 1, 4, testSince)
	require.NoError(t, err)
	assert.False(t, ok, "expired like does not count")
}
