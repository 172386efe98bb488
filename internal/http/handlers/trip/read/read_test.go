package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/travel-itinerary/internal/http/middlewarectx"
	"github.com/magabrotheeeer/travel-itinerary/internal/models"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID, tripID string) (*models.Trip, error) {
	args := m.Called(ctx, userUID, tripID)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tripID := primitive.NewObjectID()

	tests := []struct {
		name           string
		useruid        string
		tripID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное получение поездки",
			useruid: "uid-1",
			tripID:  tripID.Hex(),
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", tripID.Hex()).
					Return(&models.Trip{ID: tripID, UserUID: "uid-1", Destination: "Lisbon"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"destination":"Lisbon"`,
		},
		{
			name:           "отсутствует авторизация",
			useruid:        "",
			tripID:         tripID.Hex(),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:    "поездка не найдена или чужая",
			useruid: "uid-2",
			tripID:  tripID.Hex(),
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-2", tripID.Hex()).
					Return((*models.Trip)(nil), mongodb.ErrTripNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `Trip not found or unauthorized`,
		},
		{
			name:    "ошибка сервиса",
			useruid: "uid-1",
			tripID:  tripID.Hex(),
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", tripID.Hex()).
					Return((*models.Trip)(nil), errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not read trip`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/trips/"+tt.tripID, nil)
			if tt.useruid != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.useruid))
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.tripID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
