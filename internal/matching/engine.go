package matching

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultCooldownWindow = 30 * 24 * time.Hour
	DefaultResultCap      = 5
)

// VoteStore is the durable record of like/dislike decisions. Every read only
// considers votes created after since.
type VoteStore interface {
	// UpsertVote refreshes the active vote for the pair or inserts a new one,
	// atomically. It returns ErrRaceLost when a concurrent writer won.
	UpsertVote(ctx context.Context, voterID, targetID uint64, liked bool, at, since time.Time) error
	RecentLiked(ctx context.Context, voterID uint64, since time.Time, limit int) ([]uint64, error)
	RecentLikedBy(ctx context.Context, targetID uint64, since time.Time, limit int) ([]uint64, error)
	RecentMatched(ctx context.Context, userID uint64, since time.Time, limit int) ([]uint64, error)
}

// ExclusionResolver answers the single-pair exclusion checks a vote needs.
// The pool and the lists apply the full exclusion sets inside their own
// queries, so the engine never loads them.
type ExclusionResolver interface {
	IsIneligible(ctx context.Context, id uint64) (bool, error)
	IsMutualMatch(ctx context.Context, a, b uint64, since time.Time) (bool, error)
}

// CandidatePool picks one candidate satisfying c, excluding ineligible users,
// users the requester voted on since the cutoff and the requester's matches.
type CandidatePool interface {
	PickRandom(ctx context.Context, c Criteria, since time.Time) (uint64, bool, error)
}

// ProfileProvider resolves user ids to profiles. ListProfiles makes no
// ordering promise.
type ProfileProvider interface {
	GetProfile(ctx context.Context, id uint64) (Profile, bool, error)
	ListProfiles(ctx context.Context, ids []uint64) ([]Profile, error)
}

type Config struct {
	CooldownWindow time.Duration
	ResultCap      int
	// StoreTimeout bounds each public operation; zero means no extra bound.
	StoreTimeout time.Duration
	Now          func() time.Time
}

type Dependencies struct {
	Votes      VoteStore
	Exclusions ExclusionResolver
	Candidates CandidatePool
	Profiles   ProfileProvider
}

// Engine implements vote, lucky pick and the recent-activity lists. It keeps
// no state between calls.
type Engine struct {
	votes      VoteStore
	exclusions ExclusionResolver
	candidates CandidatePool
	profiles   ProfileProvider
	cfg        Config
}

func NewEngine(deps Dependencies, cfg Config) *Engine {
	if cfg.CooldownWindow <= 0 {
		cfg.CooldownWindow = DefaultCooldownWindow
	}
	if cfg.ResultCap <= 0 {
		cfg.ResultCap = DefaultResultCap
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Engine{
		votes:      deps.Votes,
		exclusions: deps.Exclusions,
		candidates: deps.Candidates,
		profiles:   deps.Profiles,
		cfg:        cfg,
	}
}

// VoteResult describes what a vote did. Recorded is false when the target was
// ineligible and the vote was dropped.
type VoteResult struct {
	Recorded bool
	Matched  bool
}

// Vote records voterID's decision on targetID and reports whether the pair is
// now mutually matched. Votes on ineligible targets are dropped and report
// false.
func (e *Engine) Vote(ctx context.Context, voterID, targetID uint64, liked bool) (bool, error) {
	res, err := e.CastVote(ctx, voterID, targetID, liked)
	return res.Matched, err
}

// CastVote is Vote with the dropped case told apart from a recorded vote.
func (e *Engine) CastVote(ctx context.Context, voterID, targetID uint64, liked bool) (VoteResult, error) {
	if voterID == 0 || targetID == 0 {
		return VoteResult{}, validationf("voter and target ids are required")
	}
	if voterID == targetID {
		return VoteResult{}, validationf("cannot vote on yourself")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	ineligible, err := e.exclusions.IsIneligible(ctx, targetID)
	if err != nil {
		return VoteResult{}, storeErr("check target eligibility", err)
	}
	if ineligible {
		return VoteResult{}, nil
	}

	now, since := e.window()
	if err := e.upsert(ctx, voterID, targetID, liked, now, since); err != nil {
		return VoteResult{}, err
	}

	// a dislike can never complete a match
	if !liked {
		return VoteResult{Recorded: true}, nil
	}

	matched, err := e.exclusions.IsMutualMatch(ctx, voterID, targetID, since)
	if err != nil {
		return VoteResult{}, storeErr("check mutual match", err)
	}
	return VoteResult{Recorded: true, Matched: matched}, nil
}

// upsert retries once when a concurrent writer beat us to the pair.
func (e *Engine) upsert(ctx context.Context, voterID, targetID uint64, liked bool, at, since time.Time) error {
	err := e.votes.UpsertVote(ctx, voterID, targetID, liked, at, since)
	if errors.Is(err, ErrRaceLost) {
		err = e.votes.UpsertVote(ctx, voterID, targetID, liked, at, since)
	}
	if err != nil {
		return storeErr("upsert vote", err)
	}
	return nil
}

// LuckyPick returns one uniformly random candidate for requesterID. ok is false
// when the pool is empty or the requester has no profile.
func (e *Engine) LuckyPick(ctx context.Context, requesterID uint64) (id uint64, ok bool, err error) {
	if requesterID == 0 {
		return 0, false, validationf("requester id is required")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	requester, found, err := e.profiles.GetProfile(ctx, requesterID)
	if err != nil {
		return 0, false, storeErr("get requester profile", err)
	}
	if !found {
		return 0, false, nil
	}

	_, since := e.window()
	id, ok, err = e.candidates.PickRandom(ctx, NewCriteria(requester), since)
	if err != nil {
		return 0, false, storeErr("pick candidate", err)
	}
	return id, ok, nil
}

// RecentLikedUsers lists who requesterID liked, most recent first.
func (e *Engine) RecentLikedUsers(ctx context.Context, requesterID uint64) ([]uint64, error) {
	return e.list(ctx, requesterID, "recent liked", e.votes.RecentLiked)
}

// RecentLikedMe lists who liked requesterID, most recent first, leaving out
// users already matched with them.
func (e *Engine) RecentLikedMe(ctx context.Context, requesterID uint64) ([]uint64, error) {
	return e.list(ctx, requesterID, "recent liked me", e.votes.RecentLikedBy)
}

// BidirectionalMatchedUsers lists requesterID's matches ordered by the
// requester's own vote time, most recent first.
func (e *Engine) BidirectionalMatchedUsers(ctx context.Context, requesterID uint64) ([]uint64, error) {
	return e.list(ctx, requesterID, "recent matched", e.votes.RecentMatched)
}

// Cap is the maximum length of every list the engine returns.
func (e *Engine) Cap() int { return e.cfg.ResultCap }

func (e *Engine) list(
	ctx context.Context,
	requesterID uint64,
	op string,
	query func(context.Context, uint64, time.Time, int) ([]uint64, error),
) ([]uint64, error) {
	if requesterID == 0 {
		return nil, validationf("requester id is required")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	_, since := e.window()
	ids, err := query(ctx, requesterID, since, e.cfg.ResultCap)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if ids == nil {
		ids = []uint64{}
	}
	if len(ids) > e.cfg.ResultCap {
		ids = ids[:e.cfg.ResultCap]
	}
	return ids, nil
}

func (e *Engine) window() (now, since time.Time) {
	now = e.cfg.Now().UTC().Truncate(time.Millisecond)
	return now, now.Add(-e.cfg.CooldownWindow)
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.StoreTimeout)
}
