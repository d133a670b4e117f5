package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/matching"
)

// VoteRepository provides data access methods for the Vote model.
// It encapsulates all queries related to likes/dislikes between users.
type VoteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new repository bound to the given DB connection.
func NewVoteRepository(database *gorm.DB) *VoteRepository {
	return &VoteRepository{db: database}
}

// ActiveVote returns the vote voterID cast on targetID after since, if any.
func (r *VoteRepository) ActiveVote(
	ctx context.Context,
	voterID, targetID uint64,
	since time.Time,
) (matching.Vote, bool, error) {
	var rows []db.Vote
	err := r.db.WithContext(ctx).
		Where("voter_id = ? AND target_id = ? AND created_at > ?", voterID, targetID, since).
		Order("created_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return matching.Vote{}, false, err
	}
	if len(rows) == 0 {
		return matching.Vote{}, false, nil
	}
	return toVote(rows[0]), true, nil
}

// UpsertVote records a decision made by voter -> target.
//
// Behavior:
//   - If the pair has an active row (created after since) → liked and
//     created_at are overwritten, which restarts the cooldown.
//   - Otherwise → a new row is inserted with the next round number.
//   - Both steps run in one transaction. A concurrent insert for the same pair
//     collides on idx_votes_pair_round and surfaces as matching.ErrRaceLost;
//     retrying then takes the update path.
//
// Example:
//
//	repo.UpsertVote(ctx, 1, 2, true, now, now.Add(-cooldown)) // user 1 liked user 2
func (r *VoteRepository) UpsertVote(
	ctx context.Context,
	voterID, targetID uint64,
	liked bool,
	at, since time.Time,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db.Vote{}).
			Where("voter_id = ? AND target_id = ? AND created_at > ?", voterID, targetID, since).
			Updates(map[string]any{"liked": liked, "created_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var round uint32
		err := tx.Model(&db.Vote{}).
			Select("COALESCE(MAX(round), 0)").
			Where("voter_id = ? AND target_id = ?", voterID, targetID).
			Scan(&round).Error
		if err != nil {
			return err
		}

		return tx.Create(&db.Vote{
			VoterID:   voterID,
			TargetID:  targetID,
			Round:     round + 1,
			Liked:     liked,
			CreatedAt: at,
		}).Error
	})
	return classify(err)
}

// RecentLiked returns the targets voterID liked since the cutoff.
//
// Behavior:
//   - Only active likes (liked = true, created_at > since).
//   - Excludes ineligible targets.
//   - Ordered by created_at DESC, target_id DESC, at most limit ids.
func (r *VoteRepository) RecentLiked(
	ctx context.Context,
	voterID uint64,
	since time.Time,
	limit int,
) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Table("votes v").
		Where("v.voter_id = ? AND v.liked = ? AND v.created_at > ?", voterID, true, since).
		Where("v.target_id IN (?)", eligibleIDs(r.db)).
		Order("v.created_at DESC, v.target_id DESC").
		Limit(limit).
		Pluck("v.target_id", &ids).Error
	return ids, err
}

// RecentLikedBy returns the voters who liked targetID since the cutoff.
//
// Behavior:
//   - Only active likes towards targetID.
//   - Excludes ineligible voters.
//   - Excludes voters already matched with targetID; those belong to RecentMatched.
//   - Ordered by created_at DESC, voter_id DESC, at most limit ids.
func (r *VoteRepository) RecentLikedBy(
	ctx context.Context,
	targetID uint64,
	since time.Time,
	limit int,
) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Table("votes v").
		Where("v.target_id = ? AND v.liked = ? AND v.created_at > ?", targetID, true, since).
		Where("v.voter_id IN (?)", eligibleIDs(r.db)).
		Where("v.voter_id NOT IN (?)", mutualMatchIDs(r.db, targetID, since)).
		Order("v.created_at DESC, v.voter_id DESC").
		Limit(limit).
		Pluck("v.voter_id", &ids).Error
	return ids, err
}

// RecentMatched returns userID's mutual matches.
//
// Behavior:
//   - userID's active like plus an active like back.
//   - Excludes ineligible users.
//   - Ordered by userID's own vote time DESC, target_id DESC, at most limit ids.
func (r *VoteRepository) RecentMatched(
	ctx context.Context,
	userID uint64,
	since time.Time,
	limit int,
) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Table("votes v").
		Where("v.voter_id = ? AND v.liked = ? AND v.created_at > ?", userID, true, since).
		Where("EXISTS (?)", reciprocalLike(r.db, "v", since)).
		Where("v.target_id IN (?)", eligibleIDs(r.db)).
		Order("v.created_at DESC, v.target_id DESC").
		Limit(limit).
		Pluck("v.target_id", &ids).Error
	return ids, err
}

func toVote(v db.Vote) matching.Vote {
	return matching.Vote{
		VoterID:   v.VoterID,
		TargetID:  v.TargetID,
		Liked:     v.Liked,
		CreatedAt: v.CreatedAt,
	}
}
