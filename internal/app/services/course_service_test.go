package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okalra/studentms/internal/app/models"
)

func TestListActiveCoursesFiltersByDepartment(t *testing.T) {
	store := newFakeCourseStore()
	store.add(models.Course{ID: 10, DepartmentID: 1, Name: "Algorithms", IsActive: true})
	store.add(models.Course{ID: 11, DepartmentID: 1, Name: "Legacy Systems", IsActive: false})
	store.add(models.Course{ID: 20, DepartmentID: 2, Name: "Calculus", IsActive: true})

	service := NewCourseService(store)

	all, err := service.ListActiveCourses(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Algorithms", all[0].Name)
	assert.Equal(t, "Calculus", all[1].Name)

	departmentID := int64(1)
	scoped, err := service.ListActiveCourses(context.Background(), &departmentID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Algorithms", scoped[0].Name)
}
