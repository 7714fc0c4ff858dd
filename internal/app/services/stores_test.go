package services

import (
	"context"
	"sort"
	"strings"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/repositories"
)

// In-memory store implementations backing the service tests.

type fakeStudentStore struct {
	byBusinessID map[string]*models.Student
	nextID       int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{byBusinessID: make(map[string]*models.Student), nextID: 1}
}

func (f *fakeStudentStore) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	student, ok := f.byBusinessID[studentID]
	if !ok {
		return nil, nil
	}
	return student, nil
}

func (f *fakeStudentStore) ExistsByStudentID(_ context.Context, studentID string) (bool, error) {
	_, ok := f.byBusinessID[studentID]
	return ok, nil
}

func (f *fakeStudentStore) EmailInUse(_ context.Context, email string) (bool, error) {
	for _, student := range f.byBusinessID {
		if strings.EqualFold(student.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	student.ID = f.nextID
	f.nextID++
	f.byBusinessID[student.StudentID] = student
	return nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.byBusinessID[student.StudentID]; !ok {
		return repositories.ErrStudentNotFound
	}
	f.byBusinessID[student.StudentID] = student
	return nil
}

func (f *fakeStudentStore) SetStatus(_ context.Context, student *models.Student, isActive bool) error {
	stored, ok := f.byBusinessID[student.StudentID]
	if !ok {
		return repositories.ErrStudentNotFound
	}
	stored.IsActive = isActive
	student.IsActive = isActive
	return nil
}

func (f *fakeStudentStore) List(_ context.Context, filter *string, isActive *bool, _, _ string, page, size int) ([]*models.Student, int64, error) {
	matched := f.match(filter, isActive)
	total := int64(len(matched))

	// pages below 1 address the first page, as in the real repository
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeStudentStore) ListAll(_ context.Context, filter *string, isActive *bool) ([]*models.Student, error) {
	return f.match(filter, isActive), nil
}

func (f *fakeStudentStore) match(filter *string, isActive *bool) []*models.Student {
	var matched []*models.Student
	for _, student := range f.byBusinessID {
		if isActive != nil && student.IsActive != *isActive {
			continue
		}
		if filter != nil && *filter != "" {
			needle := strings.ToLower(*filter)
			haystack := strings.ToLower(strings.Join([]string{
				student.StudentID, student.FirstName, student.LastName, student.Email}, " "))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, student)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

type departmentSyncCall struct {
	departmentID int64
	updates      []models.Course
	inserts      []models.Course
	deleteIDs    []int64
}

type fakeDepartmentStore struct {
	departments  map[int64]*models.Department
	nextID       int64
	nextCourseID int64
	syncCalls    []departmentSyncCall
}

func newFakeDepartmentStore() *fakeDepartmentStore {
	return &fakeDepartmentStore{
		departments:  make(map[int64]*models.Department),
		nextID:       1,
		nextCourseID: 1000,
	}
}

func (f *fakeDepartmentStore) add(department *models.Department) *models.Department {
	if department.ID == 0 {
		department.ID = f.nextID
	}
	if department.ID >= f.nextID {
		f.nextID = department.ID + 1
	}
	for i := range department.Courses {
		if department.Courses[i].ID == 0 {
			department.Courses[i].ID = f.nextCourseID
			f.nextCourseID++
		}
		department.Courses[i].DepartmentID = department.ID
	}
	f.departments[department.ID] = department
	return department
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, nil
	}
	return department, nil
}

func (f *fakeDepartmentStore) GetByIDWithCourses(ctx context.Context, id int64) (*models.Department, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeDepartmentStore) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, department := range f.departments {
		if strings.EqualFold(department.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDepartmentStore) ExistsByNameExcluding(_ context.Context, name string, id int64) (bool, error) {
	for _, department := range f.departments {
		if department.ID != id && strings.EqualFold(department.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDepartmentStore) CreateWithCourses(_ context.Context, department *models.Department) error {
	f.add(department)
	return nil
}

func (f *fakeDepartmentStore) UpdateWithCourseSync(_ context.Context, department *models.Department, updates, inserts []models.Course, deleteIDs []int64) error {
	stored, ok := f.departments[department.ID]
	if !ok {
		return repositories.ErrDepartmentNotFound
	}

	f.syncCalls = append(f.syncCalls, departmentSyncCall{
		departmentID: department.ID,
		updates:      updates,
		inserts:      inserts,
		deleteIDs:    deleteIDs,
	})

	byID := make(map[int64]models.Course, len(stored.Courses))
	for _, course := range stored.Courses {
		byID[course.ID] = course
	}
	for _, course := range updates {
		course.DepartmentID = stored.ID
		byID[course.ID] = course
	}
	for _, id := range deleteIDs {
		delete(byID, id)
	}
	for _, course := range inserts {
		course.ID = f.nextCourseID
		f.nextCourseID++
		course.DepartmentID = stored.ID
		byID[course.ID] = course
	}

	courses := make([]models.Course, 0, len(byID))
	for _, course := range byID {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	stored.Name = department.Name
	stored.Courses = courses
	department.Courses = courses
	return nil
}

func (f *fakeDepartmentStore) SetStatus(_ context.Context, id int64, isActive bool) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, repositories.ErrDepartmentNotFound
	}
	department.IsActive = isActive
	for i := range department.Courses {
		department.Courses[i].IsActive = isActive
	}
	return department, nil
}

func (f *fakeDepartmentStore) List(_ context.Context, filter *string, isActive *bool, page, size int) ([]models.Department, int64, error) {
	var matched []models.Department
	for _, department := range f.departments {
		if isActive != nil && department.IsActive != *isActive {
			continue
		}
		if filter != nil && *filter != "" &&
			!strings.Contains(strings.ToLower(department.Name), strings.ToLower(*filter)) {
			continue
		}
		matched = append(matched, *department)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeDepartmentStore) ListActive(_ context.Context) ([]models.Department, error) {
	var active []models.Department
	for _, department := range f.departments {
		if department.IsActive {
			active = append(active, *department)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

type fakeCourseStore struct {
	courses map[int64]models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[int64]models.Course)}
}

func (f *fakeCourseStore) add(course models.Course) {
	f.courses[course.ID] = course
}

func (f *fakeCourseStore) GetByIDsWithDepartment(_ context.Context, ids []int64) ([]models.Course, error) {
	var found []models.Course
	for _, id := range ids {
		if course, ok := f.courses[id]; ok {
			found = append(found, course)
		}
	}
	return found, nil
}

func (f *fakeCourseStore) ListActive(_ context.Context, departmentID *int64) ([]models.Course, error) {
	var active []models.Course
	for _, course := range f.courses {
		if !course.IsActive {
			continue
		}
		if departmentID != nil && course.DepartmentID != *departmentID {
			continue
		}
		active = append(active, course)
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}
