package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

var (
	seedGoals = []string{"long_term", "short_term", "friendship", "undecided"}
	seedModes = []string{"opposite", "same", "any"}
)

// SeedTestData resets the database and populates it with demo profiles and votes.
//
// Behavior:
//  1. Clears existing data in `votes` and `profiles` tables.
//  2. Creates 20 profiles (10 male, 10 female); ids 19 and 20 are blocked and
//     without a username respectively so the exclusion paths have data.
//  3. Generates ~150 votes inside the current cooldown window with ~70% likes,
//     every 3rd pair liked both ways so there are matches to list. No other
//     pair gets votes in both directions.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC().Truncate(time.Millisecond)

	// --- Fresh start ---
	if err := db.Exec("DELETE FROM votes").Error; err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	if err := db.Exec("DELETE FROM profiles").Error; err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}

	log.Println("Cleared existing data")

	// --- Seed Profiles ---
	profiles := make([]Profile, 0, 20)
	for i := 1; i <= 20; i++ {
		gender := "male"
		if i > 10 {
			gender = "female"
		}

		username := fmt.Sprintf("user%d", i)
		p := Profile{
			ID:                     uint64(i),
			Name:                   fmt.Sprintf("User %d", i),
			Username:               &username,
			Registered:             true,
			Gender:                 gender,
			Age:                    18 + r.Intn(30),
			Height:                 150 + r.Intn(45),
			GoalRelationship:       seedGoals[r.Intn(len(seedGoals))],
			FilterGender:           seedModes[r.Intn(len(seedModes))],
			FilterGoalRelationship: r.Intn(4) == 0,
			FilterAgeLowerBound:    18,
			FilterAgeUpperBound:    99,
			FilterHeightLowerBound: 140,
			FilterHeightUpperBound: 220,
		}
		switch i {
		case 19:
			p.Blocked = true
		case 20:
			p.Username = nil
		}
		profiles = append(profiles, p)
	}
	if err := db.Create(&profiles).Error; err != nil {
		return fmt.Errorf("failed to seed profiles: %w", err)
	}
	log.Println("Seeded 20 profiles.")

	// --- Seed Votes ---
	// A pair is voted on at most once in each direction, and only if neither
	// side has voted yet, so a mutual like is never half overwritten.
	seen := make(map[[2]uint64]bool)
	votes := make([]Vote, 0, 200)
	add := func(voter, target uint64, liked bool, at time.Time) {
		seen[[2]uint64{voter, target}] = true
		votes = append(votes, Vote{VoterID: voter, TargetID: target, Round: 1, Liked: liked, CreatedAt: at})
	}

	counter := 0
	for voter := uint64(1); voter <= 18; voter++ {
		for j := 0; j < 8; j++ { // each user decides on ~8 others
			target := uint64(r.Intn(20) + 1)
			if voter == target || seen[[2]uint64{voter, target}] || seen[[2]uint64{target, voter}] {
				continue
			}

			at := now.Add(-time.Duration(r.Intn(20*24)) * time.Hour)

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				add(voter, target, true, at)
				add(target, voter, true, at.Add(time.Minute))
				counter++
				continue
			}

			// like probability 70%
			add(voter, target, r.Intn(100) < 70, at)
			counter++
		}
	}
	if err := db.Create(&votes).Error; err != nil {
		return fmt.Errorf("failed to seed votes: %w", err)
	}
	log.Printf("Seeded %d votes.", len(votes))

	return nil
}
