package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/travel-itinerary/internal/models"
)

// ownedFilter строит фильтр по идентификатору поездки и владельцу.
// Некорректный hex идентификатора неотличим от отсутствующей поездки.
func ownedFilter(userUID, tripID string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(tripID)
	if err != nil {
		return nil, ErrTripNotFound
	}
	return bson.M{"_id": objectID, "user": userUID}, nil
}

// InsertTrip сохраняет новую поездку и возвращает её с выставленным ID.
func (s *TripStore) InsertTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	const op = "mongodb.InsertTrip"

	trip.ID = primitive.NewObjectID()
	result, err := s.trips.InsertOne(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trip.ID = result.InsertedID.(primitive.ObjectID)
	return trip, nil
}

// ListTripsByOwner возвращает все поездки пользователя,
// отсортированные по дате начала по возрастанию.
func (s *TripStore) ListTripsByOwner(ctx context.Context, userUID string) ([]*models.Trip, error) {
	const op = "mongodb.ListTripsByOwner"

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}})
	cursor, err := s.trips.Find(ctx, bson.M{"user": userUID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	trips := []*models.Trip{}
	for cursor.Next(ctx) {
		var trip models.Trip
		if err = cursor.Decode(&trip); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		trips = append(trips, &trip)
	}
	if err = cursor.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return trips, nil
}

// GetTripOwned возвращает поездку по идентификатору, если она принадлежит userUID.
func (s *TripStore) GetTripOwned(ctx context.Context, userUID, tripID string) (*models.Trip, error) {
	const op = "mongodb.GetTripOwned"

	filter, err := ownedFilter(userUID, tripID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var trip models.Trip
	if err = s.trips.FindOne(ctx, filter).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrTripNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &trip, nil
}

// ReplaceTripOwned перезаписывает документ поездки целиком.
// Мутации уровня дня и активности проходят через чтение-изменение-запись
// всего документа: побеждает последняя запись, версионирования нет.
func (s *TripStore) ReplaceTripOwned(ctx context.Context, userUID string, trip *models.Trip) error {
	const op = "mongodb.ReplaceTripOwned"

	filter := bson.M{"_id": trip.ID, "user": userUID}
	result, err := s.trips.ReplaceOne(ctx, filter, trip)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrTripNotFound)
	}
	return nil
}

// DeleteTripOwned удаляет поездку вместе со всеми вложенными днями и активностями.
func (s *TripStore) DeleteTripOwned(ctx context.Context, userUID, tripID string) error {
	const op = "mongodb.DeleteTripOwned"

	filter, err := ownedFilter(userUID, tripID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.trips.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrTripNotFound)
	}
	return nil
}
