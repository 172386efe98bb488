// Package mongodb реализует документное хранилище поездок на основе MongoDB.
// Поездка хранится единым вложенным документом и при любой мутации
// перезаписывается целиком.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrTripNotFound возвращается, когда поездка не существует или принадлежит
// другому пользователю. Эти случаи намеренно неразличимы.
var ErrTripNotFound = errors.New("trip not found")

const tripsCollection = "trips"

// Connect подключается к MongoDB и проверяет соединение.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	const op = "mongodb.Connect"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

// TripStore инкапсулирует коллекцию поездок.
type TripStore struct {
	trips *mongo.Collection
}

// NewTripStore создает хранилище поездок поверх подключённого клиента.
func NewTripStore(client *mongo.Client, database string) *TripStore {
	return &TripStore{
		trips: client.Database(database).Collection(tripsCollection),
	}
}
