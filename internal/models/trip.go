// Package models содержит доменные структуры путешествия: поездку (Trip),
// дни маршрута (Day) с транспортом, жильём и питанием, а также активности (Activity).
// Вспомогательные Request-типы описывают частичные обновления, приходящие из JSON.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip представляет поездку пользователя — документ верхнего уровня в хранилище.
// Days упорядочены по календарю: индекс в срезе соответствует дню маршрута.
type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserUID     string             `bson:"user" json:"user"`               // Владелец поездки
	Destination string             `bson:"destination" json:"destination"` // Направление, свободный текст
	StartDate   time.Time          `bson:"startDate" json:"startDate"`     // Дата начала (только дата)
	EndDate     time.Time          `bson:"endDate" json:"endDate"`         // Дата окончания, включительно
	Days        []Day              `bson:"days" json:"days"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"` // Выставляется один раз при создании
}

// Day описывает один календарный день поездки. Дни адресуются позицией
// в Trip.Days, собственного идентификатора у дня нет.
type Day struct {
	Date           time.Time      `bson:"date" json:"date"`
	Transportation Transportation `bson:"transportation" json:"transportation"`
	Accommodation  Accommodation  `bson:"accommodation" json:"accommodation"`
	Activities     []Activity     `bson:"activities" json:"activities"`
	Meals          Meals          `bson:"meals" json:"meals"`
	Notes          string         `bson:"notes" json:"notes"`
}

// Transportation — транспортные отрезки дня, все поля опциональны.
type Transportation struct {
	Air  string `bson:"air" json:"air"`
	Land string `bson:"land" json:"land"`
	Sea  string `bson:"sea" json:"sea"`
}

// Accommodation — место проживания с геокодированными координатами.
type Accommodation struct {
	Name        string      `bson:"name" json:"name"`
	Address     string      `bson:"address" json:"address"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
}

// Coordinates — широта и долгота, результат геокодирования адреса.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Activity — запланированное событие внутри дня, адресуется позицией
// в Day.Activities.
type Activity struct {
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Time        string  `bson:"time" json:"time"`
	Location    string  `bson:"location" json:"location"`
	Cost        float64 `bson:"cost" json:"cost"`
}

// Meals — приёмы пищи одного дня.
type Meals struct {
	Breakfast Meal `bson:"breakfast" json:"breakfast"`
	Lunch     Meal `bson:"lunch" json:"lunch"`
	Dinner    Meal `bson:"dinner" json:"dinner"`
}

// Meal — одно место питания.
type Meal struct {
	Restaurant string `bson:"restaurant" json:"restaurant"`
	Location   string `bson:"location" json:"location"`
	URL        string `bson:"url" json:"url"`
}

// CreateTripRequest используется для приёма данных из JSON-запроса на создание поездки.
// Даты приходят строками в формате 2006-01-02, парсятся и валидируются вручную.
type CreateTripRequest struct {
	Destination string `json:"destination" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
}

// UpdateTripRequest — частичное обновление поездки. Непустое поле целиком
// заменяет соответствующее поле документа, отсутствующие поля не трогаются.
type UpdateTripRequest struct {
	Destination *string `json:"destination,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Days        []Day   `json:"days,omitempty"`
}

// UpdateDayRequest — частичное обновление дня. Присутствующее поле заменяет
// поле дня целиком, слияния вложенных структур не происходит.
type UpdateDayRequest struct {
	Transportation *Transportation `json:"transportation,omitempty"`
	Accommodation  *Accommodation  `json:"accommodation,omitempty"`
	Activities     []Activity      `json:"activities,omitempty"`
	Meals          *Meals          `json:"meals,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// ActivityPatch — частичное обновление активности. В отличие от UpdateDayRequest
// выполняется пополевое слияние: nil-поле сохраняет текущее значение.
type ActivityPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Time        *string  `json:"time,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
}
