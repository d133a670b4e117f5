package matching

// Criteria is the candidate predicate derived from a requester's filter
// preferences. It carries no exclusion sets; the store combines it with
// those when it runs the candidate query.
type Criteria struct {
	RequesterID uint64

	// Gender is nil when any gender is acceptable.
	Gender *Gender
	// Goal is nil unless the requester asked for goal matching.
	Goal *string

	AgeMin, AgeMax       int
	HeightMin, HeightMax int
}

// NewCriteria builds the predicate for requester. Ranges are inclusive.
func NewCriteria(requester Profile) Criteria {
	c := Criteria{
		RequesterID: requester.ID,
		AgeMin:      requester.FilterAgeLower,
		AgeMax:      requester.FilterAgeUpper,
		HeightMin:   requester.FilterHeightLower,
		HeightMax:   requester.FilterHeightUpper,
	}

	switch requester.FilterGender {
	case PreferOpposite:
		g := requester.Gender.Opposite()
		c.Gender = &g
	case PreferSame:
		g := requester.Gender
		c.Gender = &g
	}

	if requester.FilterGoalRelationship {
		goal := requester.GoalRelationship
		c.Goal = &goal
	}

	return c
}

// Matches evaluates the predicate against a single candidate in memory.
func (c Criteria) Matches(p Profile) bool {
	if p.ID == c.RequesterID {
		return false
	}
	if c.Gender != nil && p.Gender != *c.Gender {
		return false
	}
	if c.Goal != nil && p.GoalRelationship != *c.Goal {
		return false
	}
	if p.Age < c.AgeMin || p.Age > c.AgeMax {
		return false
	}
	if p.Height < c.HeightMin || p.Height > c.HeightMax {
		return false
	}
	return true
}
