// Package matching holds the match engine: candidate selection, vote
// recording, mutual-like detection and recent-activity queries. Persistence
// lives behind the store interfaces declared in engine.go.
package matching

import (
	"slices"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Opposite returns the binary complement. Anything that is not male maps to male.
func (g Gender) Opposite() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

// GenderPreference is the requester's filter mode for candidate gender.
type GenderPreference string

const (
	PreferOpposite GenderPreference = "opposite"
	PreferSame     GenderPreference = "same"
	PreferAny      GenderPreference = "any"
)

// Vote is a single like/dislike decision.
type Vote struct {
	VoterID   uint64
	TargetID  uint64
	Liked     bool
	CreatedAt time.Time
}

// Profile is the read-only view of a user the engine needs.
type Profile struct {
	ID               uint64
	Name             string
	Username         string
	Registered       bool
	Blocked          bool
	Gender           Gender
	Age              int
	Height           int
	GoalRelationship string

	FilterGender           GenderPreference
	FilterGoalRelationship bool
	FilterAgeLower         int
	FilterAgeUpper         int
	FilterHeightLower      int
	FilterHeightUpper      int
}

// HasPublicHandle reports whether the user exposes a username others can contact.
func (p Profile) HasPublicHandle() bool { return p.Username != "" }

// Eligible reports whether the user may take part in matching at all.
func (p Profile) Eligible() bool {
	return p.Registered && !p.Blocked && p.HasPublicHandle()
}

// IDSet is an unordered set of user ids.
type IDSet map[uint64]struct{}

func NewIDSet(ids ...uint64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id uint64) { s[id] = struct{}{} }

func (s IDSet) Has(id uint64) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []uint64 {
	out := make([]uint64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// OrderProfiles re-associates profiles (in any order) with ids, keeping the
// order of ids and dropping ids without a profile.
func OrderProfiles(ids []uint64, profiles []Profile) []Profile {
	byID := make(map[uint64]Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
