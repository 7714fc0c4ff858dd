package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/pkg/apperrors"
)

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"not found", apperrors.NewResourceNotFoundError("missing"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate", apperrors.NewDuplicateResourceError("dup"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"conflict", apperrors.NewConflictError("race"), http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"business rule", apperrors.NewBusinessRuleError("inactive department"), http.StatusUnprocessableEntity, dto.ErrorCodeBusinessRule},
		{"unknown", assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := respondWith(t, tt.err)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorValidationCarriesAllMessages(t *testing.T) {
	err := apperrors.NewValidationError("Student data is invalid.", []string{
		"Email 'a@b.c' is already in use by another student.",
		"Course 'Old' is inactive and cannot be assigned.",
	})

	recorder, body := respondWith(t, err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "Student data is invalid.", body.Error.Message)

	details, ok := body.Error.Details.([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)
}
