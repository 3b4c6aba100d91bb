package listImages_test

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

	"coloringbook/internal/http-server/handlers/image/listImages"
	"coloringbook/internal/http-server/handlers/image/listImages/mocks"
	"coloringbook/internal/models"
)

func TestListImages(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	testImages := []models.Image{
		{
			ID:           "a-happy-dinosaur",
			Filename:     "a-happy-dinosaur.png",
			Title:        "A Happy Dinosaur",
			Prompt:       "a happy dinosaur",
			URL:          "/images/a-happy-dinosaur.png",
			ThumbnailURL: "/thumbnails/a-happy-dinosaur.png",
			Created:      "2025-06-01T12:00:00Z",
		},
		{
			ID:       "legacy-cat",
			Filename: "legacy-cat.png",
			Title:    "Legacy Cat",
			Prompt:   "Legacy Cat",
			URL:      "/images/legacy-cat.png",
			Created:  "2024-01-01T00:00:00Z",
		},
	}

	tests := []struct {
		name           string
		mockImages     []models.Image
		mockErr        error
		expectedStatus int
		expectedCount  int
		expectedError  string
	}{
		{
			name:           "Success",
			mockImages:     testImages,
			mockErr:        nil,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Empty Catalog",
			mockImages:     []models.Image{},
			mockErr:        nil,
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Internal Error",
			mockImages:     nil,
			mockErr:        errors.New("disk error"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to list images",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imageListerMock := mocks.NewImageLister(t)
			imageListerMock.On("List", mock.Anything).Return(tt.mockImages, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/api/images", nil)
			rr := httptest.NewRecorder()

			handler := listImages.New(log, imageListerMock)
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)

			var resp listImages.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tt.expectedError != "" {
				require.Equal(t, tt.expectedError, resp.Error)
				return
			}

			require.Equal(t, "OK", resp.Status)
			require.Len(t, resp.Images, tt.expectedCount)
			require.Equal(t, tt.mockImages, resp.Images)
		})
	}
}
