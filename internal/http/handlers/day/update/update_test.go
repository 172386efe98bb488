package update

import (
	"bytes"
	"context"
	"encoding/json"
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
	services "github.com/magabrotheeeer/travel-itinerary/internal/services/trip"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateDay(ctx context.Context, userUID, tripID string, dayIndex int, req models.UpdateDayRequest) (*models.Trip, error) {
	args := m.Called(ctx, userUID, tripID, dayIndex, req)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

func TestUpdateDayHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tripID := primitive.NewObjectID()
	notes := "Прогулка по старому городу"

	tests := []struct {
		name           string
		dayIndexParam  string
		requestBody    interface{}
		useruid        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "успешное обновление дня",
			dayIndexParam: "0",
			requestBody:   models.UpdateDayRequest{Notes: notes},
			useruid:       "uid-1",
			setupMock: func(m *MockService) {
				m.On("UpdateDay", mock.Anything, "uid-1", tripID.Hex(), 0, mock.AnythingOfType("models.UpdateDayRequest")).
					Return(&models.Trip{ID: tripID, UserUID: "uid-1", Destination: "Lisbon"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"destination":"Lisbon"`,
		},
		{
			name:           "некорректный JSON",
			dayIndexParam:  "0",
			requestBody:    "not a json",
			useruid:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode request`,
		},
		{
			name:           "нечисловой индекс дня",
			dayIndexParam:  "abc",
			requestBody:    models.UpdateDayRequest{Notes: notes},
			useruid:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid day index`,
		},
		{
			name:          "индекс дня вне диапазона",
			dayIndexParam: "99",
			requestBody:   models.UpdateDayRequest{Notes: notes},
			useruid:       "uid-1",
			setupMock: func(m *MockService) {
				m.On("UpdateDay", mock.Anything, "uid-1", tripID.Hex(), 99, mock.AnythingOfType("models.UpdateDayRequest")).
					Return((*models.Trip)(nil), services.ErrInvalidDayIndex)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid day index`,
		},
		{
			name:          "поездка не найдена или чужая",
			dayIndexParam: "0",
			requestBody:   models.UpdateDayRequest{Notes: notes},
			useruid:       "uid-2",
			setupMock: func(m *MockService) {
				m.On("UpdateDay", mock.Anything, "uid-2", tripID.Hex(), 0, mock.AnythingOfType("models.UpdateDayRequest")).
					Return((*models.Trip)(nil), mongodb.ErrTripNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `Trip not found or unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPatch, "/trips/"+tripID.Hex()+"/days/"+tt.dayIndexParam, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.useruid != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.useruid))
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tripID.Hex())
			rctx.URLParams.Add("dayIndex", tt.dayIndexParam)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
