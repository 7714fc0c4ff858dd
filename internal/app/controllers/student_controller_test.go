package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/models/dto"
)

// stubStudentService records the arguments the controller hands to the
// service layer
type stubStudentService struct {
	listFilter   *dto.StudentFilterRequest
	exportCalled bool
	exportFilter *string
	exportActive *bool
}

func (s *stubStudentService) CreateStudent(_ context.Context, _ *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	return &dto.StudentResponse{}, nil
}

func (s *stubStudentService) UpdateStudent(_ context.Context, _ string, _ *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	return &dto.StudentResponse{}, nil
}

func (s *stubStudentService) SoftDeleteStudent(_ context.Context, _ string) error {
	return nil
}

func (s *stubStudentService) ToggleStudentStatus(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return &dto.StudentResponse{}, nil
}

func (s *stubStudentService) ListStudents(_ context.Context, filter *dto.StudentFilterRequest) (*dto.StudentListResponse, error) {
	s.listFilter = filter
	return &dto.StudentListResponse{Students: []dto.StudentResponse{}}, nil
}

func (s *stubStudentService) ExportStudents(_ context.Context, filter *string, isActive *bool) ([]*models.Student, error) {
	s.exportCalled = true
	s.exportFilter = filter
	s.exportActive = isActive
	return nil, nil
}

type stubExportService struct{}

func (stubExportService) ExportCSV(w io.Writer, _ []*models.Student) error {
	_, err := w.Write([]byte("studentId,firstName\n"))
	return err
}

func (stubExportService) ExportExcel(_ io.Writer, _ []*models.Student) error {
	return nil
}

func newStudentRouter(svc *stubStudentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewStudentController(svc, stubExportService{})
	router.GET("/students", controller.ListStudents)
	router.GET("/students/export", controller.ExportStudents)
	return router
}

func TestListStudentsPageZeroIsAccepted(t *testing.T) {
	svc := &stubStudentService{}
	router := newStudentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students?page=0&size=10", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listFilter)
	assert.Equal(t, 0, svc.listFilter.Page)
	assert.Equal(t, 10, svc.listFilter.PageSize)
}

func TestListStudentsDefaultsPageAndSize(t *testing.T) {
	svc := &stubStudentService{}
	router := newStudentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listFilter)
	assert.Equal(t, 1, svc.listFilter.Page)
	assert.Equal(t, 10, svc.listFilter.PageSize)
}

func TestExportStudentsParsesIsActive(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"lowercase true", "true", true},
		{"uppercase true", "TRUE", true},
		{"numeric false", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubStudentService{}
			router := newStudentRouter(svc)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/students/export?isActive="+tt.value, nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			require.True(t, svc.exportCalled)
			require.NotNil(t, svc.exportActive)
			assert.Equal(t, tt.want, *svc.exportActive)
		})
	}
}

func TestExportStudentsRejectsInvalidIsActive(t *testing.T) {
	svc := &stubStudentService{}
	router := newStudentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/export?isActive=maybe", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.exportCalled)
}

func TestExportStudentsRejectsUnknownFormat(t *testing.T) {
	svc := &stubStudentService{}
	router := newStudentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/export?format=pdf", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.exportCalled)
}
