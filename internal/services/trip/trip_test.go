package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/travel-itinerary/internal/models"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

// MockTripRepository реализует интерфейс TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) InsertTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	args := m.Called(ctx, trip)
	result, _ := args.Get(0).(*models.Trip)
	return result, args.Error(1)
}

func (m *MockTripRepository) ListTripsByOwner(ctx context.Context, userUID string) ([]*models.Trip, error) {
	args := m.Called(ctx, userUID)
	result, _ := args.Get(0).([]*models.Trip)
	return result, args.Error(1)
}

func (m *MockTripRepository) GetTripOwned(ctx context.Context, userUID, tripID string) (*models.Trip, error) {
	args := m.Called(ctx, userUID, tripID)
	result, _ := args.Get(0).(*models.Trip)
	return result, args.Error(1)
}

func (m *MockTripRepository) ReplaceTripOwned(ctx context.Context, userUID string, trip *models.Trip) error {
	args := m.Called(ctx, userUID, trip)
	return args.Error(0)
}

func (m *MockTripRepository) DeleteTripOwned(ctx context.Context, userUID, tripID string) error {
	args := m.Called(ctx, userUID, tripID)
	return args.Error(0)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestService(repo *MockTripRepository, cache *MockCache) *TripService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTripService(repo, cache, logger)
}

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed.UTC()
}

func sampleTrip(userUID string, days ...models.Day) *models.Trip {
	return &models.Trip{
		ID:          primitive.NewObjectID(),
		UserUID:     userUID,
		Destination: "Lisbon",
		StartDate:   date("2026-01-01"),
		EndDate:     date("2026-01-03"),
		Days:        days,
	}
}

func TestCreate(t *testing.T) {
	t.Run("разворачивает по одному дню на каждую дату", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		repo.On("InsertTrip", mock.Anything, mock.AnythingOfType("*models.Trip")).
			Return(sampleTrip("uid-1"), nil).
			Run(func(args mock.Arguments) {
				trip := args.Get(1).(*models.Trip)
				require.Len(t, trip.Days, 3)
				assert.Equal(t, date("2026-01-01"), trip.Days[0].Date)
				assert.Equal(t, date("2026-01-02"), trip.Days[1].Date)
				assert.Equal(t, date("2026-01-03"), trip.Days[2].Date)
			})
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		_, err := svc.Create(context.Background(), "uid-1", models.CreateTripRequest{
			Destination: "Lisbon",
			StartDate:   "2026-01-01",
			EndDate:     "2026-01-03",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("однодневная поездка содержит один день", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		repo.On("InsertTrip", mock.Anything, mock.AnythingOfType("*models.Trip")).
			Return(sampleTrip("uid-1"), nil).
			Run(func(args mock.Arguments) {
				trip := args.Get(1).(*models.Trip)
				require.Len(t, trip.Days, 1)
				assert.Equal(t, date("2026-01-01"), trip.Days[0].Date)
			})
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		_, err := svc.Create(context.Background(), "uid-1", models.CreateTripRequest{
			Destination: "Lisbon",
			StartDate:   "2026-01-01",
			EndDate:     "2026-01-01",
		})
		require.NoError(t, err)
	})

	t.Run("дата окончания раньше даты начала", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		_, err := svc.Create(context.Background(), "uid-1", models.CreateTripRequest{
			Destination: "Lisbon",
			StartDate:   "2026-01-03",
			EndDate:     "2026-01-01",
		})
		assert.ErrorIs(t, err, ErrEndBeforeStart)
		repo.AssertNotCalled(t, "InsertTrip", mock.Anything, mock.Anything)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		_, err := svc.Create(context.Background(), "uid-1", models.CreateTripRequest{
			Destination: "Lisbon",
			StartDate:   "not-a-date",
			EndDate:     "2026-01-01",
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
		repo.AssertNotCalled(t, "InsertTrip", mock.Anything, mock.Anything)
	})
}

func TestRead(t *testing.T) {
	t.Run("попадание в кеш не обращается к репозиторию", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		cached := sampleTrip("uid-1")
		cache.On("Get", mock.Anything, cacheKey("uid-1", cached.ID.Hex()), mock.Anything).
			Return(true, nil).
			Run(func(args mock.Arguments) {
				ptr := args.Get(2).(**models.Trip)
				*ptr = cached
			})

		trip, err := svc.Read(context.Background(), "uid-1", cached.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, cached, trip)
		repo.AssertNotCalled(t, "GetTripOwned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("промах кеша идет в репозиторий и кеширует результат", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1")
		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		cache.On("Set", mock.Anything, cacheKey("uid-1", stored.ID.Hex()), stored, tripCacheTTL).Return(nil)

		trip, err := svc.Read(context.Background(), "uid-1", stored.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, stored, trip)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("чужая поездка не находится", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		repo.On("GetTripOwned", mock.Anything, "uid-2", mock.Anything).
			Return((*models.Trip)(nil), mongodb.ErrTripNotFound)

		_, err := svc.Read(context.Background(), "uid-2", primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, mongodb.ErrTripNotFound)
	})
}

func TestUpdateFields(t *testing.T) {
	t.Run("обновляются только переданные поля", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{Date: date("2026-01-01")})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		repo.On("ReplaceTripOwned", mock.Anything, "uid-1", mock.AnythingOfType("*models.Trip")).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		destination := "Porto"
		trip, err := svc.UpdateFields(context.Background(), "uid-1", stored.ID.Hex(),
			models.UpdateTripRequest{Destination: &destination})
		require.NoError(t, err)
		assert.Equal(t, "Porto", trip.Destination)
		assert.Equal(t, date("2026-01-01"), trip.StartDate)
		assert.Equal(t, date("2026-01-03"), trip.EndDate)
	})

	t.Run("изменение дат не пересоздает дни", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1",
			models.Day{Date: date("2026-01-01"), Notes: "прилет"},
			models.Day{Date: date("2026-01-02")},
			models.Day{Date: date("2026-01-03")},
		)
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		repo.On("ReplaceTripOwned", mock.Anything, "uid-1", mock.AnythingOfType("*models.Trip")).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		endDate := "2026-01-10"
		trip, err := svc.UpdateFields(context.Background(), "uid-1", stored.ID.Hex(),
			models.UpdateTripRequest{EndDate: &endDate})
		require.NoError(t, err)
		assert.Equal(t, date("2026-01-10"), trip.EndDate)
		require.Len(t, trip.Days, 3)
		assert.Equal(t, "прилет", trip.Days[0].Notes)
	})

	t.Run("некорректная дата не сохраняется", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1")
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)

		badDate := "not-a-date"
		_, err := svc.UpdateFields(context.Background(), "uid-1", stored.ID.Hex(),
			models.UpdateTripRequest{StartDate: &badDate})
		assert.ErrorIs(t, err, ErrInvalidDate)
		repo.AssertNotCalled(t, "ReplaceTripOwned", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateDay(t *testing.T) {
	t.Run("отсутствующие поля дня сохраняются", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{
			Date:  date("2026-01-01"),
			Notes: "старые заметки",
			Accommodation: models.Accommodation{
				Name: "Hotel Alfama",
			},
		})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		repo.On("ReplaceTripOwned", mock.Anything, "uid-1", mock.AnythingOfType("*models.Trip")).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		transportation := models.Transportation{Air: "TP1024"}
		trip, err := svc.UpdateDay(context.Background(), "uid-1", stored.ID.Hex(), 0,
			models.UpdateDayRequest{Transportation: &transportation})
		require.NoError(t, err)
		assert.Equal(t, "TP1024", trip.Days[0].Transportation.Air)
		assert.Equal(t, "старые заметки", trip.Days[0].Notes)
		assert.Equal(t, "Hotel Alfama", trip.Days[0].Accommodation.Name)
	})

	t.Run("индекс дня вне диапазона не сохраняет изменений", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{Date: date("2026-01-01")})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)

		_, err := svc.UpdateDay(context.Background(), "uid-1", stored.ID.Hex(), 5,
			models.UpdateDayRequest{Notes: "новые заметки"})
		assert.ErrorIs(t, err, ErrInvalidDayIndex)
		repo.AssertNotCalled(t, "ReplaceTripOwned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("отрицательный индекс дня", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{Date: date("2026-01-01")})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)

		_, err := svc.UpdateDay(context.Background(), "uid-1", stored.ID.Hex(), -1,
			models.UpdateDayRequest{Notes: "новые заметки"})
		assert.ErrorIs(t, err, ErrInvalidDayIndex)
	})
}

func TestActivities(t *testing.T) {
	t.Run("добавление активности в конец списка", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{
			Date:       date("2026-01-01"),
			Activities: []models.Activity{{Title: "Завтрак"}},
		})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		repo.On("ReplaceTripOwned", mock.Anything, "uid-1", mock.AnythingOfType("*models.Trip")).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		trip, err := svc.AddActivity(context.Background(), "uid-1", stored.ID.Hex(), 0,
			models.Activity{Title: "Музей", Cost: 12})
		require.NoError(t, err)
		require.Len(t, trip.Days[0].Activities, 2)
		assert.Equal(t, "Музей", trip.Days[0].Activities[1].Title)
	})

	t.Run("частичное обновление сливает только переданные поля", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{
			Date:       date("2026-01-01"),
			Activities: []models.Activity{{Title: "Музей", Cost: 10, Location: "Белен"}},
		})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		repo.On("ReplaceTripOwned", mock.Anything, "uid-1", mock.AnythingOfType("*models.Trip")).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		cost := 20.0
		trip, err := svc.UpdateActivity(context.Background(), "uid-1", stored.ID.Hex(), 0, 0,
			models.ActivityPatch{Cost: &cost})
		require.NoError(t, err)
		activity := trip.Days[0].Activities[0]
		assert.Equal(t, "Музей", activity.Title)
		assert.Equal(t, "Белен", activity.Location)
		assert.Equal(t, 20.0, activity.Cost)
	})

	t.Run("удаление сдвигает последующие активности", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{
			Date: date("2026-01-01"),
			Activities: []models.Activity{
				{Title: "a"}, {Title: "b"}, {Title: "c"},
			},
		})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)
		repo.On("ReplaceTripOwned", mock.Anything, "uid-1", mock.AnythingOfType("*models.Trip")).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, tripCacheTTL).Return(nil)

		trip, err := svc.RemoveActivity(context.Background(), "uid-1", stored.ID.Hex(), 0, 0)
		require.NoError(t, err)
		require.Len(t, trip.Days[0].Activities, 2)
		assert.Equal(t, "b", trip.Days[0].Activities[0].Title)
		assert.Equal(t, "c", trip.Days[0].Activities[1].Title)
	})

	t.Run("индекс активности вне диапазона не сохраняет изменений", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		stored := sampleTrip("uid-1", models.Day{Date: date("2026-01-01")})
		repo.On("GetTripOwned", mock.Anything, "uid-1", stored.ID.Hex()).Return(stored, nil)

		_, err := svc.RemoveActivity(context.Background(), "uid-1", stored.ID.Hex(), 0, 0)
		assert.ErrorIs(t, err, ErrInvalidActivityIndex)
		repo.AssertNotCalled(t, "ReplaceTripOwned", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRemove(t *testing.T) {
	t.Run("удаление инвалидирует кеш", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		tripID := primitive.NewObjectID().Hex()
		cache.On("Invalidate", mock.Anything, cacheKey("uid-1", tripID)).Return(nil)
		repo.On("DeleteTripOwned", mock.Anything, "uid-1", tripID).Return(nil)

		err := svc.Remove(context.Background(), "uid-1", tripID)
		require.NoError(t, err)
		cache.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("удаление несуществующей поездки", func(t *testing.T) {
		repo := new(MockTripRepository)
		cache := new(MockCache)
		svc := newTestService(repo, cache)

		tripID := primitive.NewObjectID().Hex()
		cache.On("Invalidate", mock.Anything, mock.Anything).Return(nil)
		repo.On("DeleteTripOwned", mock.Anything, "uid-1", tripID).Return(mongodb.ErrTripNotFound)

		err := svc.Remove(context.Background(), "uid-1", tripID)
		assert.ErrorIs(t, err, mongodb.ErrTripNotFound)
	})
}
