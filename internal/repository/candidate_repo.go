package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/matching"
)

// CandidateRepository draws lucky-pick candidates from the profiles table.
type CandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new repository bound to the given DB connection.
func NewCandidateRepository(database *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: database}
}

// CandidateFilter translates c into conditions over a profiles query aliased
// as "p". It only adds WHERE clauses and never runs the query.
func CandidateFilter(c matching.Criteria) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("p.id <> ?", c.RequesterID)
		if c.Gender != nil {
			q = q.Where("p.gender = ?", string(*c.Gender))
		}
		if c.Goal != nil {
			q = q.Where("p.goal_relationship = ?", *c.Goal)
		}
		return q.
			Where("p.age BETWEEN ? AND ?", c.AgeMin, c.AgeMax).
			Where("p.height BETWEEN ? AND ?", c.HeightMin, c.HeightMax)
	}
}

// PickRandom selects one uniformly random profile id that satisfies c.
//
// Behavior:
//   - Applies CandidateFilter(c) and the eligibility flags.
//   - Excludes anyone the requester voted on since the cutoff.
//   - Excludes the requester's active mutual matches.
//   - ok is false when nothing survives.
func (r *CandidateRepository) PickRandom(
	ctx context.Context,
	c matching.Criteria,
	since time.Time,
) (uint64, bool, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Table("profiles p").
		Scopes(CandidateFilter(c), eligibleProfile("p")).
		Where("p.id NOT IN (?)", recentlyVotedIDs(r.db, c.RequesterID, since)).
		Where("p.id NOT IN (?)", mutualMatchIDs(r.db, c.RequesterID, since)).
		Order(randomOrder(r.db)).
		Limit(1).
		Pluck("p.id", &ids).Error
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func randomOrder(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}
