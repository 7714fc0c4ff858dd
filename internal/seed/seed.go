package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/repositories"
)

func strptr(s string) *string { return &s }

// CreateDefaultData seeds a small set of departments and courses so a fresh
// install has something to register students against. Existing names are left
// untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := repositories.NewDepartmentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default departments and courses...")

	defaults := []models.Department{
		{
			Name:     "Computer Science",
			IsActive: true,
			Courses: []models.Course{
				{Name: "Introduction to Programming", Description: strptr("First-semester programming fundamentals"), IsActive: true},
				{Name: "Data Structures", IsActive: true},
				{Name: "Databases", IsActive: true},
			},
		},
		{
			Name:     "Mathematics",
			IsActive: true,
			Courses: []models.Course{
				{Name: "Calculus I", IsActive: true},
				{Name: "Linear Algebra", IsActive: true},
			},
		},
	}

	var finalErr error
	for i := range defaults {
		department := &defaults[i]

		exists, err := departmentRepo.ExistsByName(ctx, department.Name)
		if err != nil {
			lgr.Error().Err(err).Str("department", department.Name).Msg("Error checking default department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		if err := departmentRepo.CreateWithCourses(ctx, department); err != nil {
			lgr.Error().Err(err).Str("department", department.Name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("department", department.Name).Int("courses", len(department.Courses)).Msg("Seeded department")
	}

	return finalErr
}
