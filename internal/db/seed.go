package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/logger"
	"github.com/oggyb/osmatch/internal/store"
)

// SeedOptions controls the demo dataset produced by SeedTestData.
type SeedOptions struct {
	// OperatingSystems to populate; defaults to the first four catalogue entries.
	OperatingSystems []string
	// PerGender is the number of profiles per gender per OS.
	PerGender int
	// Reset clears the profiles and interests tables first. A Redis ledger
	// is left as is; likes pointing at removed profiles are skipped on read.
	Reset bool
	// RandSeed makes the like graph reproducible; 0 uses the current time.
	RandSeed int64
}

// SeedStats reports what SeedTestData wrote.
type SeedStats struct {
	Profiles  int
	Interests int
}

var demoNames = map[domain.Gender][]string{
	domain.GenderMale:   {"Ahmet", "Mehmet", "Can", "Emre", "Burak", "Mert", "Kerem", "Onur"},
	domain.GenderFemale: {"Ayşe", "Elif", "Zeynep", "Deniz", "Ece", "Selin", "Derya", "Naz"},
}

// SeedTestData populates the database with demo profiles and records likes
// through ledger, so they land in whichever backend the server reads.
//
// Behavior:
//  1. Optionally clears existing data in `interests` and `profiles`.
//  2. Creates PerGender profiles of each gender for every OS.
//  3. Each profile likes ~50% of its candidates; every 3rd like is reciprocated,
//     so the roster view has mutual matches to show.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(ctx context.Context, db *gorm.DB, ledger store.InterestLedger, opts SeedOptions) (SeedStats, error) {
	var stats SeedStats

	if len(opts.OperatingSystems) == 0 {
		opts.OperatingSystems = domain.KnownOperatingSystems[:4]
	}
	if opts.PerGender <= 0 {
		opts.PerGender = 5
	}
	if opts.RandSeed == 0 {
		opts.RandSeed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(opts.RandSeed))

	if opts.Reset {
		if err := clearAll(db); err != nil {
			return stats, err
		}
		logger.Info("cleared existing data")
	}

	type bucket struct{ male, female []Profile }
	buckets := make(map[string]*bucket, len(opts.OperatingSystems))

	for _, osName := range opts.OperatingSystems {
		b := &bucket{}
		for _, g := range []domain.Gender{domain.GenderMale, domain.GenderFemale} {
			for i := 0; i < opts.PerGender; i++ {
				names := demoNames[g]
				p := Profile{
					ID:        uuid.NewString(),
					Name:      names[r.Intn(len(names))],
					Gender:    string(g),
					OS:        osName,
					BirthDate: time.Date(1985+r.Intn(20), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
					Bio:       fmt.Sprintf("%s kullanıcısı", osName),
				}
				if err := db.WithContext(ctx).Create(&p).Error; err != nil {
					return stats, fmt.Errorf("failed to seed profile: %w", err)
				}
				stats.Profiles++
				if g == domain.GenderMale {
					b.male = append(b.male, p)
				} else {
					b.female = append(b.female, p)
				}
			}
		}
		buckets[osName] = b
	}
	logger.Info("seeded profiles", "count", stats.Profiles)

	counter := 0
	seen := make(map[[2]string]struct{})
	like := func(from, to string) error {
		if _, err := ledger.AppendInterest(ctx, domain.ProfileID(from), domain.ProfileID(to)); err != nil {
			return fmt.Errorf("failed to seed interest: %w", err)
		}
		if _, ok := seen[[2]string{from, to}]; !ok {
			seen[[2]string{from, to}] = struct{}{}
			stats.Interests++
		}
		return nil
	}

	for _, b := range buckets {
		for _, pairSet := range [][2][]Profile{{b.male, b.female}, {b.female, b.male}} {
			for _, actor := range pairSet[0] {
				for _, target := range pairSet[1] {
					if r.Intn(100) >= 50 {
						continue
					}
					if err := like(actor.ID, target.ID); err != nil {
						return stats, err
					}
					// guarantee a mutual like every 3rd pair
					if counter%3 == 0 {
						if err := like(target.ID, actor.ID); err != nil {
							return stats, err
						}
					}
					counter++
				}
			}
		}
	}
	logger.Info("seeded interests", "count", stats.Interests)

	return stats, nil
}

// SeedMinimalTestData wipes the DB and inserts a small deterministic dataset:
//
//   - viewer "m1" (erkek, Ubuntu)
//   - "f1", "f2", "f3" (kadin, Ubuntu) and "f4", "f5" (kadin, Windows 11)
//   - "m2" (erkek, Ubuntu)
//   - likes: m1 -> f1, f1 -> m1 (mutual), f2 -> m1 (one-way), m2 -> f1 (one-way)
//
// The likes are written through ledger; the SQL tables are always cleared.
func SeedMinimalTestData(ctx context.Context, db *gorm.DB, ledger store.InterestLedger) error {
	if err := clearAll(db); err != nil {
		return err
	}

	born := time.Date(1999, time.April, 20, 0, 0, 0, 0, time.UTC)
	profiles := []Profile{
		{ID: "m1", Name: "Ahmet", Gender: "erkek", OS: "Ubuntu", BirthDate: born},
		{ID: "m2", Name: "Mehmet", Gender: "erkek", OS: "Ubuntu", BirthDate: born},
		{ID: "f1", Name: "Ayşe", Gender: "kadin", OS: "Ubuntu", BirthDate: born},
		{ID: "f2", Name: "Elif", Gender: "kadin", OS: "Ubuntu", BirthDate: born},
		{ID: "f3", Name: "Zeynep", Gender: "kadin", OS: "Ubuntu", BirthDate: born},
		{ID: "f4", Name: "Deniz", Gender: "kadin", OS: "Windows 11", BirthDate: born},
		{ID: "f5", Name: "Ece", Gender: "kadin", OS: "Windows 11", BirthDate: born},
	}
	if err := db.WithContext(ctx).Create(&profiles).Error; err != nil {
		return err
	}

	likes := [][2]domain.ProfileID{
		{"m1", "f1"},
		{"f1", "m1"},
		{"f2", "m1"},
		{"m2", "f1"},
	}
	for _, l := range likes {
		if _, err := ledger.AppendInterest(ctx, l[0], l[1]); err != nil {
			return fmt.Errorf("failed to seed interest: %w", err)
		}
	}
	return nil
}

func clearAll(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM interests").Error; err != nil {
		return fmt.Errorf("failed to clear interests: %w", err)
	}
	if err := db.Exec("DELETE FROM profiles").Error; err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}
	return nil
}
