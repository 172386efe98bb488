// Package services содержит бизнес-логику работы с поездками: создание
// с разворачиванием дней по датам, частичные обновления поездки, дней
// и активностей, а также кеширование документов.
//
// Все операции принимают идентификатор владельца: запрос к чужой или
// несуществующей поездке завершается одинаковой ошибкой "не найдено".
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/travel-itinerary/internal/models"
)

// ErrInvalidDate возвращается, когда дата в запросе не распарсилась.
var ErrInvalidDate = errors.New("invalid date format")

// ErrEndBeforeStart возвращается, когда дата окончания раньше даты начала.
var ErrEndBeforeStart = errors.New("end date is before start date")

const tripCacheTTL = time.Hour

// dateLayouts — допустимые форматы дат во входных запросах.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// TripRepository определяет методы для работы с поездками в документном хранилище.
type TripRepository interface {
	// InsertTrip сохраняет новую поездку и возвращает её с выставленным ID.
	InsertTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	// ListTripsByOwner возвращает поездки пользователя по возрастанию даты начала.
	ListTripsByOwner(ctx context.Context, userUID string) ([]*models.Trip, error)
	// GetTripOwned возвращает поездку, если она принадлежит пользователю.
	GetTripOwned(ctx context.Context, userUID, tripID string) (*models.Trip, error)
	// ReplaceTripOwned перезаписывает документ поездки целиком.
	ReplaceTripOwned(ctx context.Context, userUID string, trip *models.Trip) error
	// DeleteTripOwned удаляет поездку со всем содержимым.
	DeleteTripOwned(ctx context.Context, userUID, tripID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// TripService реализует бизнес-логику работы с поездками, включая кеширование.
type TripService struct {
	repo  TripRepository
	cache Cache
	log   *slog.Logger
}

// NewTripService создает новый экземпляр TripService.
func NewTripService(repo TripRepository, cache Cache, log *slog.Logger) *TripService {
	return &TripService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// cacheKey включает владельца: поездка, закешированная одним пользователем,
// не должна быть видна другому.
func cacheKey(userUID, tripID string) string {
	return fmt.Sprintf("trip:%s:%s", userUID, tripID)
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			// Время суток отбрасывается, дни считаются по календарным датам.
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Create создает поездку с одним днём на каждую дату из [startDate, endDate].
func (s *TripService) Create(ctx context.Context, userUID string, req models.CreateTripRequest) (*models.Trip, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, ErrEndBeforeStart
	}

	trip := &models.Trip{
		UserUID:     userUID,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        expandDays(startDate, endDate),
		CreatedAt:   time.Now().UTC(),
	}

	trip, err = s.repo.InsertTrip(ctx, trip)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new trip",
		slog.String("trip_id", trip.ID.Hex()), slog.Int("days", len(trip.Days)))

	key := cacheKey(userUID, trip.ID.Hex())
	if err := s.cache.Set(ctx, key, trip, tripCacheTTL); err != nil {
		s.log.Warn("failed to cache trip", slog.String("key", key), slog.Any("err", err))
	}

	return trip, nil
}

// List возвращает все поездки пользователя, отсортированные по дате начала.
func (s *TripService) List(ctx context.Context, userUID string) ([]*models.Trip, error) {
	return s.repo.ListTripsByOwner(ctx, userUID)
}

// Read возвращает поездку по идентификатору, используя кеш или репозиторий.
func (s *TripService) Read(ctx context.Context, userUID, tripID string) (*models.Trip, error) {
	var result *models.Trip
	key := cacheKey(userUID, tripID)
	found, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetTripOwned(ctx, userUID, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result, tripCacheTTL); err != nil {
		s.log.Warn("failed to cache trip", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// UpdateFields целиком заменяет присутствующие в запросе поля поездки.
// Дни при изменении дат заново не разворачиваются: состав Trip.Days
// фиксируется при создании и меняется только явной передачей days.
func (s *TripService) UpdateFields(ctx context.Context, userUID, tripID string, req models.UpdateTripRequest) (*models.Trip, error) {
	trip, err := s.repo.GetTripOwned(ctx, userUID, tripID)
	if err != nil {
		return nil, err
	}

	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		trip.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		trip.EndDate = endDate
	}
	if req.Days != nil {
		trip.Days = req.Days
	}

	return s.persist(ctx, userUID, trip)
}

// Remove удаляет поездку вместе с днями и активностями и инвалидирует кеш.
func (s *TripService) Remove(ctx context.Context, userUID, tripID string) error {
	key := cacheKey(userUID, tripID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove trip from cache", slog.String("key", key), slog.Any("err", err))
	}

	return s.repo.DeleteTripOwned(ctx, userUID, tripID)
}

// UpdateDay заменяет присутствующие поля дня по индексу.
func (s *TripService) UpdateDay(ctx context.Context, userUID, tripID string, dayIndex int, req models.UpdateDayRequest) (*models.Trip, error) {
	trip, err := s.repo.GetTripOwned(ctx, userUID, tripID)
	if err != nil {
		return nil, err
	}

	day, err := dayAt(trip, dayIndex)
	if err != nil {
		return nil, err
	}
	applyDayPatch(day, req)

	return s.persist(ctx, userUID, trip)
}

// AddActivity добавляет активность в конец списка активностей дня.
func (s *TripService) AddActivity(ctx context.Context, userUID, tripID string, dayIndex int, activity models.Activity) (*models.Trip, error) {
	trip, err := s.repo.GetTripOwned(ctx, userUID, tripID)
	if err != nil {
		return nil, err
	}

	day, err := dayAt(trip, dayIndex)
	if err != nil {
		return nil, err
	}
	day.Activities = append(day.Activities, activity)

	return s.persist(ctx, userUID, trip)
}

// UpdateActivity выполняет пополевое слияние активности по индексам дня и активности.
func (s *TripService) UpdateActivity(ctx context.Context, userUID, tripID string, dayIndex, activityIndex int, patch models.ActivityPatch) (*models.Trip, error) {
	trip, err := s.repo.GetTripOwned(ctx, userUID, tripID)
	if err != nil {
		return nil, err
	}

	day, err := dayAt(trip, dayIndex)
	if err != nil {
		return nil, err
	}
	activity, err := activityAt(day, activityIndex)
	if err != nil {
		return nil, err
	}
	applyActivityPatch(activity, patch)

	return s.persist(ctx, userUID, trip)
}

// RemoveActivity удаляет активность по индексу, сдвигая последующие на место удалённой.
func (s *TripService) RemoveActivity(ctx context.Context, userUID, tripID string, dayIndex, activityIndex int) (*models.Trip, error) {
	trip, err := s.repo.GetTripOwned(ctx, userUID, tripID)
	if err != nil {
		return nil, err
	}

	day, err := dayAt(trip, dayIndex)
	if err != nil {
		return nil, err
	}
	if _, err := activityAt(day, activityIndex); err != nil {
		return nil, err
	}
	day.Activities = append(day.Activities[:activityIndex], day.Activities[activityIndex+1:]...)

	return s.persist(ctx, userUID, trip)
}

// persist перезаписывает документ поездки и обновляет кеш.
func (s *TripService) persist(ctx context.Context, userUID string, trip *models.Trip) (*models.Trip, error) {
	if err := s.repo.ReplaceTripOwned(ctx, userUID, trip); err != nil {
		return nil, err
	}

	key := cacheKey(userUID, trip.ID.Hex())
	if err := s.cache.Set(ctx, key, trip, tripCacheTTL); err != nil {
		s.log.Warn("failed to cache trip", slog.String("key", key), slog.Any("err", err))
	}
	return trip, nil
}
