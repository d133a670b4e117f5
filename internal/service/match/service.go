package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/oggyb/muzz-match/internal/app"
	svcErr "github.com/oggyb/muzz-match/internal/errors"
	"github.com/oggyb/muzz-match/internal/events"
	"github.com/oggyb/muzz-match/internal/logger"
	"github.com/oggyb/muzz-match/internal/matching"
	"github.com/oggyb/muzz-match/internal/metrics"
	pb "github.com/oggyb/muzz-match/internal/proto/match"
	"github.com/oggyb/muzz-match/internal/repository"
)

// Service implements the MatchService gRPC API.
// It parses wire ids, checks the requester, applies the vote rate limit and
// hydrates the engine's id lists into profiles.
type Service struct {
	appCtx   *app.AppContext
	engine   *matching.Engine
	profiles *repository.ProfileRepository

	pb.UnimplementedMatchServiceServer
}

// NewMatchService creates a new Match service with dependencies from AppContext.
// Dependencies include:
//   - DB connection (vote, exclusion, candidate and profile repositories)
//   - RedisCache for the vote rate limit (optional)
//   - Publisher for match events
func NewMatchService(appCtx *app.AppContext) *Service {
	profiles := repository.NewProfileRepository(appCtx.DB)
	cfg := appCtx.Config.Match

	engine := matching.NewEngine(matching.Dependencies{
		Votes:      repository.NewVoteRepository(appCtx.DB),
		Exclusions: repository.NewExclusionRepository(appCtx.DB),
		Candidates: repository.NewCandidateRepository(appCtx.DB),
		Profiles:   profiles,
	}, matching.Config{
		CooldownWindow: cfg.CooldownWindow,
		ResultCap:      cfg.ResultCap,
		StoreTimeout:   cfg.StoreTimeout,
	})

	return &Service{
		appCtx:   appCtx,
		engine:   engine,
		profiles: profiles,
	}
}

// Vote records a like or dislike and reports whether the pair is now matched.
//
// Behavior:
//   - Rejects malformed or equal ids with InvalidArgument.
//   - Rejects ineligible requesters with PermissionDenied.
//   - Counts the vote against the voter's rate window; over the limit → ResourceExhausted.
//   - Votes on ineligible targets are dropped and report matched = false.
//   - On a match, publishes a match event. Publish failures are only logged.
//
// Example:
//
//	svc.Vote(ctx, &pb.VoteRequest{VoterUserId: "1", TargetUserId: "2", Liked: true})
func (s *Service) Vote(ctx context.Context, req *pb.VoteRequest) (*pb.VoteResponse, error) {
	defer observe("Vote", time.Now())
	log := s.log(ctx)

	log.Debug(
		"Vote called",
		"voter", req.GetVoterUserId(),
		"target", req.GetTargetUserId(),
		"liked", req.GetLiked(),
	)

	voterID, err := parseID("voter_user_id", req.GetVoterUserId())
	if err != nil {
		return nil, err
	}
	targetID, err := parseID("target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}
	if voterID == targetID {
		return nil, svcErr.InvalidArgument("cannot vote on yourself")
	}

	if err := s.authorize(ctx, "Vote", voterID, true); err != nil {
		return nil, err
	}

	decision := "dislike"
	if req.GetLiked() {
		decision = "like"
	}

	if err := s.checkRate(ctx, voterID); err != nil {
		metrics.VotesTotal.WithLabelValues(decision, "rate_limited").Inc()
		return nil, err
	}

	res, err := s.engine.CastVote(ctx, voterID, targetID, req.GetLiked())
	if err != nil {
		return nil, s.fail(ctx, "Vote", err)
	}

	switch {
	case !res.Recorded:
		metrics.VotesTotal.WithLabelValues(decision, "ignored").Inc()
		log.Debug("Vote dropped, target not eligible", "voter", voterID, "target", targetID)
		return &pb.VoteResponse{Matched: false}, nil
	case !res.Matched:
		metrics.VotesTotal.WithLabelValues(decision, "recorded").Inc()
		return &pb.VoteResponse{Matched: false}, nil
	}

	metrics.VotesTotal.WithLabelValues(decision, "matched").Inc()
	metrics.MatchesTotal.Inc()

	ev := events.NewMatchEvent(voterID, targetID, time.Now())
	if err := s.appCtx.Publisher.PublishMatch(ctx, ev); err != nil {
		log.Warn("publish match event failed", "voter", voterID, "target", targetID, "err", err)
	}

	log.Debug("Vote result", "voter", voterID, "target", targetID, "matched", true)
	return &pb.VoteResponse{Matched: true}, nil
}

// LuckyPick returns one random candidate for the user, or an empty response
// when nobody is left in the pool.
//
// Example:
//
//	svc.LuckyPick(ctx, &pb.UserRequest{UserId: "42"})
func (s *Service) LuckyPick(ctx context.Context, req *pb.UserRequest) (*pb.LuckyPickResponse, error) {
	defer observe("LuckyPick", time.Now())
	log := s.log(ctx)

	log.Debug("LuckyPick called", "user", req.GetUserId())

	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, "LuckyPick", userID, false); err != nil {
		return nil, err
	}

	id, ok, err := s.engine.LuckyPick(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "LuckyPick", err)
	}
	if !ok {
		metrics.LuckyPicksTotal.WithLabelValues("empty").Inc()
		return &pb.LuckyPickResponse{}, nil
	}

	p, found, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "LuckyPick", storeErr("hydrate candidate", err))
	}
	// candidate vanished between the pick and the read
	if !found {
		metrics.LuckyPicksTotal.WithLabelValues("empty").Inc()
		return &pb.LuckyPickResponse{}, nil
	}

	metrics.LuckyPicksTotal.WithLabelValues("hit").Inc()
	log.Debug("LuckyPick result", "user", userID, "candidate", id)
	return &pb.LuckyPickResponse{Profile: toProto(p)}, nil
}

// ListRecentLiked returns the users the requester liked, most recent first.
func (s *Service) ListRecentLiked(ctx context.Context, req *pb.UserRequest) (*pb.ProfilesResponse, error) {
	return s.list(ctx, "ListRecentLiked", req, s.engine.RecentLikedUsers)
}

// ListRecentLikedMe returns the users who liked the requester and are not
// matched with them yet, most recent first.
func (s *Service) ListRecentLikedMe(ctx context.Context, req *pb.UserRequest) (*pb.ProfilesResponse, error) {
	return s.list(ctx, "ListRecentLikedMe", req, s.engine.RecentLikedMe)
}

// ListRecentMatched returns the requester's matches, ordered by the
// requester's own vote, most recent first.
func (s *Service) ListRecentMatched(ctx context.Context, req *pb.UserRequest) (*pb.ProfilesResponse, error) {
	return s.list(ctx, "ListRecentMatched", req, s.engine.BidirectionalMatchedUsers)
}

func (s *Service) list(
	ctx context.Context,
	op string,
	req *pb.UserRequest,
	query func(context.Context, uint64) ([]uint64, error),
) (*pb.ProfilesResponse, error) {
	defer observe(op, time.Now())
	log := s.log(ctx)

	log.Debug(op+" called", "user", req.GetUserId())

	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, op, userID, false); err != nil {
		return nil, err
	}

	ids, err := query(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	resp := &pb.ProfilesResponse{Profiles: []*pb.Profile{}}
	if len(ids) == 0 {
		return resp, nil
	}

	profiles, err := s.profiles.ListProfiles(ctx, ids)
	if err != nil {
		return nil, s.fail(ctx, op, storeErr("hydrate profiles", err))
	}
	for _, p := range matching.OrderProfiles(ids, profiles) {
		resp.Profiles = append(resp.Profiles, toProto(p))
	}

	log.Debug(op+" result", "user", userID, "count", len(resp.Profiles))
	return resp, nil
}

// authorize rejects requesters that exist but may not use matching. Unknown
// requesters pass unless mustExist is set; reads answer them with empty results.
func (s *Service) authorize(ctx context.Context, op string, userID uint64, mustExist bool) error {
	p, found, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return s.fail(ctx, op, storeErr("load requester", err))
	}
	if !found && mustExist {
		s.log(ctx).Debug("requester has no profile", "user", userID, "op", op)
		return svcErr.PermissionDenied("user is not registered")
	}
	if found && !p.Eligible() {
		s.log(ctx).Debug("requester not eligible", "user", userID, "op", op)
		return svcErr.PermissionDenied("user is not allowed to use matching")
	}
	return nil
}

// checkRate fails open: a Redis outage never blocks votes.
func (s *Service) checkRate(ctx context.Context, voterID uint64) error {
	if s.appCtx.RedisCache == nil {
		return nil
	}

	limit := s.appCtx.Config.RateLimit
	allowed, retryAfter, err := s.appCtx.RedisCache.AllowVote(ctx, voterID, limit.Votes, limit.Window)
	if err != nil {
		s.log(ctx).Warn("vote rate limit unavailable", "voter", voterID, "err", err)
		return nil
	}
	if !allowed {
		return svcErr.ResourceExhausted(fmt.Sprintf("vote rate limit exceeded, retry in %s", retryAfter))
	}
	return nil
}

func (s *Service) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, matching.ErrStoreUnavailable) {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		s.log(ctx).Error(op+" failed", "err", err)
	}
	return svcErr.Map(err)
}

// log prefers the request-scoped logger set by the server interceptor.
func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOr(ctx, s.appCtx.Logger)
}

func parseID(field, raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, svcErr.InvalidArgument(field + " must be a positive uint64")
	}
	return id, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", matching.ErrStoreUnavailable, op, err)
}

func observe(op string, start time.Time) {
	metrics.OperationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func toProto(p matching.Profile) *pb.Profile {
	return &pb.Profile{
		UserId:           strconv.FormatUint(p.ID, 10),
		Name:             p.Name,
		Username:         p.Username,
		Gender:           string(p.Gender),
		Age:              uint32(p.Age),
		Height:           uint32(p.Height),
		GoalRelationship: p.GoalRelationship,
	}
}
