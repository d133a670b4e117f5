package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/matching"
)

// ProfileRepository reads profiles for the engine and for hydrating results.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// GetProfile returns the profile for id. ok is false when it does not exist.
func (r *ProfileRepository) GetProfile(ctx context.Context, id uint64) (matching.Profile, bool, error) {
	var rows []db.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return matching.Profile{}, false, err
	}
	if len(rows) == 0 {
		return matching.Profile{}, false, nil
	}
	return toProfile(rows[0]), true, nil
}

// ListProfiles returns the profiles for ids in no particular order. Unknown
// ids are skipped.
func (r *ProfileRepository) ListProfiles(ctx context.Context, ids []uint64) ([]matching.Profile, error) {
	if len(ids) == 0 {
		return []matching.Profile{}, nil
	}

	var rows []db.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]matching.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProfile(row))
	}
	return out, nil
}

func toProfile(p db.Profile) matching.Profile {
	var username string
	if p.Username != nil {
		username = *p.Username
	}
	return matching.Profile{
		ID:                     p.ID,
		Name:                   p.Name,
		Username:               username,
		Registered:             p.Registered,
		Blocked:                p.Blocked,
		Gender:                 matching.Gender(p.Gender),
		Age:                    p.Age,
		Height:                 p.Height,
		GoalRelationship:       p.GoalRelationship,
		FilterGender:           matching.GenderPreference(p.FilterGender),
		FilterGoalRelationship: p.FilterGoalRelationship,
		FilterAgeLower:         p.FilterAgeLowerBound,
		FilterAgeUpper:         p.FilterAgeUpperBound,
		FilterHeightLower:      p.FilterHeightLowerBound,
		FilterHeightUpper:      p.FilterHeightUpperBound,
	}
}
