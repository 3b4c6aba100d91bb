package generateImage_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coloringbook/internal/catalog"
	"coloringbook/internal/http-server/handlers/image/generateImage"
	"coloringbook/internal/http-server/handlers/image/generateImage/mocks"
	"coloringbook/internal/models"
)

func TestGenerateImage(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	testImage := &models.Image{
		ID:           "a-happy-dinosaur",
		Filename:     "a-happy-dinosaur.png",
		Title:        "A Happy Dinosaur",
		Prompt:       "a happy dinosaur",
		URL:          "/images/a-happy-dinosaur.png",
		ThumbnailURL: "/thumbnails/a-happy-dinosaur.png",
		Created:      "2025-06-01T12:00:00Z",
	}

	tests := []struct {
		name           string
		body           string
		mockImage      *models.Image
		mockErr        error
		wantIngest     bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			body:           `{"prompt":"a happy dinosaur"}`,
			mockImage:      testImage,
			wantIngest:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty Body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "empty request",
		},
		{
			name:           "Missing Prompt",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "field Prompt is a required field",
		},
		{
			name:           "Blank Prompt",
			body:           `{"prompt":"   "}`,
			mockErr:        catalog.ErrEmptyPrompt,
			wantIngest:     true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "prompt cannot be empty",
		},
		{
			name:           "Generation Failure",
			body:           `{"prompt":"a happy dinosaur"}`,
			mockErr:        fmt.Errorf("catalog.Ingest: %w: quota exceeded", catalog.ErrGeneration),
			wantIngest:     true,
			expectedStatus: http.StatusBadGateway,
			expectedError:  "failed to generate image",
		},
		{
			name:           "Storage Failure",
			body:           `{"prompt":"a happy dinosaur"}`,
			mockErr:        errors.New("disk full"),
			wantIngest:     true,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to save image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imageGeneratorMock := mocks.NewImageGenerator(t)

			if tt.wantIngest {
				imageGeneratorMock.On("Ingest", mock.Anything, mock.Anything).
					Return(tt.mockImage, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()

			handler := generateImage.New(log, imageGeneratorMock)
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)

			var resp generateImage.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tt.expectedError != "" {
				require.Equal(t, tt.expectedError, resp.Error)
				return
			}

			require.Equal(t, "OK", resp.Status)
			require.Equal(t, *tt.mockImage, resp.Image)
		})
	}
}
