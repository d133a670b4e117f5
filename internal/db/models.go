package db

import (
	"time"
)

// Profile table. Written by the profile management subsystem; the match
// engine only reads it.
//
// Username is nullable: a NULL or empty username means the user has no public
// handle and is excluded from matching, same as blocked or unregistered users.
type Profile struct {
	ID                     uint64    `gorm:"primaryKey;autoIncrement:false"`
	Name                   string    `gorm:"size:64;not null"`
	Username               *string   `gorm:"size:64"`
	Registered             bool      `gorm:"not null;index:idx_profiles_eligibility,priority:1"`
	Blocked                bool      `gorm:"not null;index:idx_profiles_eligibility,priority:2"`
	Gender                 string    `gorm:"size:16;not null;index:idx_profiles_candidate,priority:1"`
	Age                    int       `gorm:"not null;index:idx_profiles_candidate,priority:2"`
	Height                 int       `gorm:"not null"`
	GoalRelationship       string    `gorm:"size:32;not null"`
	FilterGender           string    `gorm:"size:16;not null"`
	FilterGoalRelationship bool      `gorm:"not null"`
	FilterAgeLowerBound    int       `gorm:"not null"`
	FilterAgeUpperBound    int       `gorm:"not null"`
	FilterHeightLowerBound int       `gorm:"not null"`
	FilterHeightUpperBound int       `gorm:"not null"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

// Vote represents a voter's like/dislike decision on a target.
//
// A pair may own several rows over time: each cooldown window gets its own
// row, numbered by Round. Only the row created after (now - cooldown) is
// active; older rows stay as history.
//
// Indexes:
//   - idx_votes_pair_round(voter_id, target_id, round) UNIQUE
//     Two concurrent inserts for the same pair compute the same round and
//     one of them fails, so a pair never holds two active rows.
//   - idx_votes_voter_created(voter_id, created_at DESC)
//     Recently voted / recently liked lookups for a voter.
//   - idx_votes_target_liked_created(target_id, liked, created_at DESC)
//     "Who liked me" lists and the reciprocal side of the match check.
type Vote struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	VoterID   uint64    `gorm:"not null;uniqueIndex:idx_votes_pair_round,priority:1;index:idx_votes_voter_created,priority:1"`
	TargetID  uint64    `gorm:"not null;uniqueIndex:idx_votes_pair_round,priority:2;index:idx_votes_target_liked_created,priority:1"`
	Round     uint32    `gorm:"not null;uniqueIndex:idx_votes_pair_round,priority:3"`
	Liked     bool      `gorm:"not null;index:idx_votes_target_liked_created,priority:2"`
	CreatedAt time.Time `gorm:"not null;index:idx_votes_voter_created,priority:2,sort:desc;index:idx_votes_target_liked_created,priority:3,sort:desc"`
}
