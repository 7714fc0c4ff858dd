package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/pkg/apperrors"
)

func int64ptr(v int64) *int64 { return &v }

func TestBuildCourseSyncPlan_MixedSubmission(t *testing.T) {
	persisted := []models.Course{
		{ID: 1, DepartmentID: 7, Name: "Algorithms", IsActive: true},
		{ID: 2, DepartmentID: 7, Name: "Compilers", IsActive: true},
	}
	submitted := []dto.UpdateCourseNested{
		{ID: int64ptr(1), Name: "Advanced Algorithms"},
		{Name: "Distributed Systems"},
	}

	plan, err := buildCourseSyncPlan(persisted, submitted, true)
	require.NoError(t, err)

	require.Len(t, plan.updates, 1)
	assert.Equal(t, int64(1), plan.updates[0].ID)
	assert.Equal(t, "Advanced Algorithms", plan.updates[0].Name)
	assert.Equal(t, int64(7), plan.updates[0].DepartmentID)

	require.Len(t, plan.inserts, 1)
	assert.Equal(t, "Distributed Systems", plan.inserts[0].Name)
	assert.True(t, plan.inserts[0].IsActive)

	assert.Equal(t, []int64{2}, plan.deleteIDs)
}

func TestBuildCourseSyncPlan_EmptySubmissionDeletesAll(t *testing.T) {
	persisted := []models.Course{
		{ID: 3, Name: "Databases"},
		{ID: 1, Name: "Algorithms"},
		{ID: 2, Name: "Compilers"},
	}

	plan, err := buildCourseSyncPlan(persisted, nil, true)
	require.NoError(t, err)

	assert.Empty(t, plan.updates)
	assert.Empty(t, plan.inserts)
	// Deletions follow persisted order
	assert.Equal(t, []int64{3, 1, 2}, plan.deleteIDs)
}

func TestBuildCourseSyncPlan_UnchangedSubmissionIsStable(t *testing.T) {
	persisted := []models.Course{
		{ID: 1, Name: "Algorithms"},
		{ID: 2, Name: "Compilers"},
	}
	submitted := []dto.UpdateCourseNested{
		{ID: int64ptr(1), Name: "Algorithms"},
		{ID: int64ptr(2), Name: "Compilers"},
	}

	plan, err := buildCourseSyncPlan(persisted, submitted, true)
	require.NoError(t, err)

	assert.Len(t, plan.updates, 2)
	assert.Empty(t, plan.inserts)
	assert.Empty(t, plan.deleteIDs)
}

func TestBuildCourseSyncPlan_UnknownIDFails(t *testing.T) {
	persisted := []models.Course{{ID: 1, Name: "Algorithms"}}
	submitted := []dto.UpdateCourseNested{
		{ID: int64ptr(1), Name: "Algorithms"},
		{ID: int64ptr(99), Name: "Phantom"},
	}

	plan, err := buildCourseSyncPlan(persisted, submitted, true)
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	var validationErr *apperrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Messages, 1)
	assert.Contains(t, validationErr.Messages[0], "[99]")
}

func TestBuildCourseSyncPlan_NewCoursesInheritInactiveFlag(t *testing.T) {
	submitted := []dto.UpdateCourseNested{{Name: "Night School"}}

	plan, err := buildCourseSyncPlan(nil, submitted, false)
	require.NoError(t, err)

	require.Len(t, plan.inserts, 1)
	assert.False(t, plan.inserts[0].IsActive)
}
