package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
)

func TestErrorResponseWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails string
	}{
		{
			name:        "validation keeps details",
			err:         errors.NewValidationError("Validation failed", "email is required"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
			wantDetails: "email is required",
		},
		{
			name:        "storage hides details",
			err:         fmt.Errorf("wrap: %w", errors.NewStorageError("failed to delete ticket", "remove uploads/x.png: permission denied")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: constants.ErrMsgStorageFailure,
		},
		{
			name:        "plain error is internal",
			err:         fmt.Errorf("sql: connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: constants.ErrMsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
		})
	}
}
