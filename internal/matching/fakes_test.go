package matching_test

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/oggyb/muzz-match/internal/matching"
)

// memStore is an in-memory implementation of every store interface the
// engine depends on. It keeps only the active vote per pair.
type memStore struct {
	mu       sync.Mutex
	profiles map[uint64]matching.Profile
	votes    map[[2]uint64]matching.Vote

	// raceLost makes the next n UpsertVote calls fail with ErrRaceLost.
	raceLost int
	upserts  int
	err      error
}

func newMemStore(profiles ...matching.Profile) *memStore {
	s := &memStore{
		profiles: make(map[uint64]matching.Profile),
		votes:    make(map[[2]uint64]matching.Vote),
	}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return s
}

func (s *memStore) deps() matching.Dependencies {
	return matching.Dependencies{Votes: s, Exclusions: s, Candidates: s, Profiles: s}
}

func (s *memStore) active(voter, target uint64, since time.Time) (matching.Vote, bool) {
	v, ok := s.votes[[2]uint64{voter, target}]
	if !ok || !v.CreatedAt.After(since) {
		return matching.Vote{}, false
	}
	return v, true
}

func (s *memStore) eligible(id uint64) bool {
	p, ok := s.profiles[id]
	return ok && p.Eligible()
}

func (s *memStore) matched(a, b uint64, since time.Time) bool {
	ab, ok1 := s.active(a, b, since)
	ba, ok2 := s.active(b, a, since)
	return ok1 && ok2 && ab.Liked && ba.Liked
}

func (s *memStore) ActiveVote(_ context.Context, voter, target uint64, since time.Time) (matching.Vote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return matching.Vote{}, false, s.err
	}
	v, ok := s.active(voter, target, since)
	return v, ok, nil
}

func (s *memStore) UpsertVote(_ context.Context, voter, target uint64, liked bool, at, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.err != nil {
		return s.err
	}
	if s.raceLost > 0 {
		s.raceLost--
		return matching.ErrRaceLost
	}
	s.votes[[2]uint64{voter, target}] = matching.Vote{VoterID: voter, TargetID: target, Liked: liked, CreatedAt: at}
	return nil
}

// sortedVotes returns active likes accepted by keep, newest first, ties by
// the other party's id descending.
func (s *memStore) sortedVotes(since time.Time, keep func(matching.Vote) bool, other func(matching.Vote) uint64, limit int) []uint64 {
	var vs []matching.Vote
	for _, v := range s.votes {
		if v.Liked && v.CreatedAt.After(since) && keep(v) {
			vs = append(vs, v)
		}
	}
	slices.SortFunc(vs, func(a, b matching.Vote) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case other(a) > other(b):
			return -1
		case other(a) < other(b):
			return 1
		}
		return 0
	})

	ids := make([]uint64, 0, len(vs))
	for _, v := range vs {
		if len(ids) == limit {
			break
		}
		ids = append(ids, other(v))
	}
	return ids
}

func (s *memStore) RecentLiked(_ context.Context, voter uint64, since time.Time, limit int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sortedVotes(since, func(v matching.Vote) bool {
		return v.VoterID == voter && s.eligible(v.TargetID)
	}, func(v matching.Vote) uint64 { return v.TargetID }, limit), nil
}

func (s *memStore) RecentLikedBy(_ context.Context, target uint64, since time.Time, limit int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sortedVotes(since, func(v matching.Vote) bool {
		return v.TargetID == target && s.eligible(v.VoterID) && !s.matched(target, v.VoterID, since)
	}, func(v matching.Vote) uint64 { return v.VoterID }, limit), nil
}

func (s *memStore) RecentMatched(_ context.Context, user uint64, since time.Time, limit int) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sortedVotes(since, func(v matching.Vote) bool {
		return v.VoterID == user && s.eligible(v.TargetID) && s.matched(user, v.TargetID, since)
	}, func(v matching.Vote) uint64 { return v.TargetID }, limit), nil
}

func (s *memStore) IsIneligible(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.eligible(id), s.err
}

func (s *memStore) IsMutualMatch(_ context.Context, a, b uint64, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matched(a, b, since), s.err
}

func (s *memStore) PickRandom(_ context.Context, c matching.Criteria, since time.Time) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, false, s.err
	}

	var pool []uint64
	for id, p := range s.profiles {
		if !p.Eligible() || !c.Matches(p) {
			continue
		}
		if _, voted := s.active(c.RequesterID, id, since); voted {
			continue
		}
		if s.matched(c.RequesterID, id, since) {
			continue
		}
		pool = append(pool, id)
	}
	if len(pool) == 0 {
		return 0, false, nil
	}
	return pool[rand.Intn(len(pool))], true, nil
}

func (s *memStore) GetProfile(_ context.Context, id uint64) (matching.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	return p, ok, s.err
}

func (s *memStore) ListProfiles(_ context.Context, ids []uint64) ([]matching.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]matching.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, s.err
}

var errBoom = errors.New("boom")

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// profile returns an eligible profile with wide-open filters.
func profile(id uint64, gender matching.Gender) matching.Profile {
	return matching.Profile{
		ID:                id,
		Name:              "user",
		Username:          "user",
		Registered:        true,
		Gender:            gender,
		Age:               30,
		Height:            175,
		GoalRelationship:  "long_term",
		FilterGender:      matching.PreferAny,
		FilterAgeLower:    18,
		FilterAgeUpper:    99,
		FilterHeightLower: 100,
		FilterHeightUpper: 250,
	}
}
