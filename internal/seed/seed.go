package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/app/repositories"
)

// CreateDefaultRoster writes a small sample roster when the store is empty,
// so a fresh install has courses to pick from on the login screen.
func CreateDefaultRoster(ctx context.Context, store repositories.RosterStore, lgr zerolog.Logger) error {
	students, err := store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("reading roster for seeding: %w", err)
	}
	if len(students) > 0 {
		lgr.Debug().Int("count", len(students)).Msg("Roster already populated, skipping seed")
		return nil
	}

	sample := []models.Student{
		{
			ID:            uuid.New().String(),
			FirstName:     "Lena",
			LastName:      "Hoffmann",
			Gender:        "w",
			BirthDate:     "2011-03-14",
			School:        "GS Lindenhof",
			DesiredCourse: "Mathematik",
			Courses:       []string{"Mathematik"},
			Attendance:    []string{"x"},
		},
		{
			ID:            uuid.New().String(),
			FirstName:     "Jonas",
			LastName:      "Becker",
			Gender:        "m",
			BirthDate:     "2010-11-02",
			School:        "GS Am Park",
			DesiredCourse: "Kunst",
			Courses:       []string{"Kunst", "Mathematik"},
			Attendance:    []string{"", "x"},
		},
	}
	for i := range sample {
		sample[i].Normalize()
	}

	if err := store.WriteAll(ctx, sample); err != nil {
		return fmt.Errorf("writing seed roster: %w", err)
	}

	lgr.Info().Int("count", len(sample)).Msg("Seeded sample roster")
	return nil
}
