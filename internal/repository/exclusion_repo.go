package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/matching"
)

// ExclusionRepository computes the id sets that keep users out of candidate
// pools and activity lists. All reads are live; nothing is cached.
type ExclusionRepository struct {
	db *gorm.DB
}

// NewExclusionRepository creates a new repository bound to the given DB connection.
func NewExclusionRepository(database *gorm.DB) *ExclusionRepository {
	return &ExclusionRepository{db: database}
}

// IneligibleIDs returns every profile that is blocked, unregistered or
// without a public handle.
func (r *ExclusionRepository) IneligibleIDs(ctx context.Context) (matching.IDSet, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Table("profiles").
		Where("registered = ? OR blocked = ? OR username IS NULL OR username = ''", false, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return matching.NewIDSet(ids...), nil
}

// IsIneligible reports whether id may not be voted on. Ids without a profile
// count as ineligible.
func (r *ExclusionRepository) IsIneligible(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("profiles p").
		Where("p.id = ?", id).
		Scopes(eligibleProfile("p")).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// RecentlyVotedIDs returns the targets requesterID voted on (either way) since the cutoff.
func (r *ExclusionRepository) RecentlyVotedIDs(ctx context.Context, requesterID uint64, since time.Time) (matching.IDSet, error) {
	var ids []uint64
	if err := recentlyVotedIDs(r.db.WithContext(ctx), requesterID, since).Pluck("target_id", &ids).Error; err != nil {
		return nil, err
	}
	return matching.NewIDSet(ids...), nil
}

// MutualMatchIDs returns the users requesterID and who both liked each other since the cutoff.
func (r *ExclusionRepository) MutualMatchIDs(ctx context.Context, requesterID uint64, since time.Time) (matching.IDSet, error) {
	var ids []uint64
	if err := mutualMatchIDs(r.db.WithContext(ctx), requesterID, since).Pluck("v1.target_id", &ids).Error; err != nil {
		return nil, err
	}
	return matching.NewIDSet(ids...), nil
}

// IsMutualMatch checks the match derivation for a single pair with two index lookups.
func (r *ExclusionRepository) IsMutualMatch(ctx context.Context, a, b uint64, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("votes v").
		Where("v.voter_id = ? AND v.target_id = ? AND v.liked = ? AND v.created_at > ?", a, b, true, since).
		Where("EXISTS (?)", reciprocalLike(r.db, "v", since)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

//
// Query fragments shared by the vote and candidate repositories.
//

// eligibleProfile restricts a profiles query (aliased as alias) to users
// taking part in matching.
func eligibleProfile(alias string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(
			alias+".registered = ? AND "+alias+".blocked = ? AND "+alias+".username IS NOT NULL AND "+alias+".username <> ''",
			true, false,
		)
	}
}

// eligibleIDs is a subquery selecting the ids of eligible profiles.
func eligibleIDs(db *gorm.DB) *gorm.DB {
	return db.Table("profiles e").Select("e.id").Scopes(eligibleProfile("e"))
}

// recentlyVotedIDs selects target_id of requesterID's active votes.
func recentlyVotedIDs(db *gorm.DB, requesterID uint64, since time.Time) *gorm.DB {
	return db.Table("votes").
		Select("target_id").
		Where("voter_id = ? AND created_at > ?", requesterID, since)
}

// reciprocalLike is a correlated subquery matching an active like going the
// other way of the vote row aliased as alias.
func reciprocalLike(db *gorm.DB, alias string, since time.Time) *gorm.DB {
	return db.Table("votes rv").
		Select("1").
		Where("rv.voter_id = "+alias+".target_id AND rv.target_id = "+alias+".voter_id").
		Where("rv.liked = ? AND rv.created_at > ?", true, since)
}

// mutualMatchIDs selects v1.target_id for every active mutual like of requesterID.
func mutualMatchIDs(db *gorm.DB, requesterID uint64, since time.Time) *gorm.DB {
	return db.Table("votes v1").
		Select("v1.target_id").
		Where("v1.voter_id = ? AND v1.liked = ? AND v1.created_at > ?", requesterID, true, since).
		Where("EXISTS (?)", reciprocalLike(db, "v1", since))
}
