package health_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coloringbook/internal/http-server/handlers/health"
	"coloringbook/internal/http-server/handlers/health/mocks"
)

func TestHealth(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	tests := []struct {
		name           string
		mockCount      int
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Healthy",
			mockCount:      7,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"healthy","images_count":7}`,
		},
		{
			name:           "Empty Catalog",
			mockCount:      0,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"healthy","images_count":0}`,
		},
		{
			name:           "Storage Error",
			mockErr:        errors.New("permission denied"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to read catalog"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imageCounterMock := mocks.NewImageCounter(t)
			imageCounterMock.On("Count", mock.Anything).Return(tt.mockCount, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rr := httptest.NewRecorder()

			handler := health.New(log, imageCounterMock)
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)

			var actualMap, expectedMap map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &actualMap))
			require.NoError(t, json.Unmarshal([]byte(tt.expectedBody), &expectedMap))
			require.Equal(t, expectedMap, actualMap)
		})
	}
}
