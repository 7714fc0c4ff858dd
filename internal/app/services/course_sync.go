package services

import (
	"fmt"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/pkg/apperrors"
)

// courseSyncPlan is the reconciliation of a department's persisted course
// collection against a submitted course list. The three sets are applied in
// one transaction; the plan itself performs no writes.
type courseSyncPlan struct {
	updates   []models.Course
	inserts   []models.Course
	deleteIDs []int64
}

// buildCourseSyncPlan diffs the submitted course list against the persisted
// collection. Entries with an ID matching a persisted course become in-place
// updates, entries without an ID become inserts, and persisted courses not
// referenced by any submitted entry are scheduled for deletion.
//
// A submitted ID with no persisted counterpart is a caller error and fails the
// whole plan rather than being silently dropped.
//
// Single pass over the submission with an ID-keyed index of the persisted set,
// so the diff is linear in persisted + submitted count.
func buildCourseSyncPlan(persisted []models.Course, submitted []dto.UpdateCourseNested, newCourseActive bool) (*courseSyncPlan, error) {
	existing := make(map[int64]models.Course, len(persisted))
	for _, course := range persisted {
		existing[course.ID] = course
	}

	referenced := make(map[int64]bool, len(submitted))
	var unknown []int64
	plan := &courseSyncPlan{}

	for _, entry := range submitted {
		if entry.ID == nil {
			plan.inserts = append(plan.inserts, models.Course{
				Name:        entry.Name,
				Description: entry.Description,
				IsActive:    newCourseActive,
			})
			continue
		}

		course, ok := existing[*entry.ID]
		if !ok {
			unknown = append(unknown, *entry.ID)
			continue
		}

		referenced[*entry.ID] = true
		course.Name = entry.Name
		course.Description = entry.Description
		plan.updates = append(plan.updates, course)
	}

	if len(unknown) > 0 {
		return nil, apperrors.NewValidationError(
			"Submitted course list is invalid.",
			[]string{fmt.Sprintf("The following course IDs do not belong to this department: %v", unknown)},
		)
	}

	// Persisted courses absent from the submission are orphans to delete.
	// Walking the persisted slice keeps the deletion order deterministic.
	for _, course := range persisted {
		if !referenced[course.ID] {
			plan.deleteIDs = append(plan.deleteIDs, course.ID)
		}
	}

	return plan, nil
}
