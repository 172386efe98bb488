package services

import (
	"errors"
	"time"

	"github.com/magabrotheeeer/travel-itinerary/internal/models"
)

// ErrInvalidDayIndex возвращается при выходе индекса дня за границы Trip.Days.
var ErrInvalidDayIndex = errors.New("invalid day index")

// ErrInvalidActivityIndex возвращается при выходе индекса активности за границы
// Day.Activities, в том числе когда у дня нет активностей.
var ErrInvalidActivityIndex = errors.New("invalid activity index")

// expandDays строит по одному дню на каждую календарную дату
// из отрезка [start, end] включительно.
func expandDays(start, end time.Time) []models.Day {
	days := []models.Day{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, models.Day{Date: d})
	}
	return days
}

// dayAt возвращает указатель на день по индексу с проверкой границ.
// При ошибке поездка не изменяется.
func dayAt(trip *models.Trip, dayIndex int) (*models.Day, error) {
	if dayIndex < 0 || dayIndex >= len(trip.Days) {
		return nil, ErrInvalidDayIndex
	}
	return &trip.Days[dayIndex], nil
}

// applyDayPatch заменяет присутствующие непустые поля дня целиком,
// отсутствующие поля остаются нетронутыми.
func applyDayPatch(day *models.Day, patch models.UpdateDayRequest) {
	if patch.Transportation != nil {
		day.Transportation = *patch.Transportation
	}
	if patch.Accommodation != nil {
		day.Accommodation = *patch.Accommodation
	}
	if patch.Activities != nil {
		day.Activities = patch.Activities
	}
	if patch.Meals != nil {
		day.Meals = *patch.Meals
	}
	if patch.Notes != "" {
		day.Notes = patch.Notes
	}
}

// applyActivityPatch выполняет пополевое слияние: nil-поле сохраняет
// текущее значение активности.
func applyActivityPatch(activity *models.Activity, patch models.ActivityPatch) {
	if patch.Title != nil {
		activity.Title = *patch.Title
	}
	if patch.Description != nil {
		activity.Description = *patch.Description
	}
	if patch.Time != nil {
		activity.Time = *patch.Time
	}
	if patch.Location != nil {
		activity.Location = *patch.Location
	}
	if patch.Cost != nil {
		activity.Cost = *patch.Cost
	}
}

// activityAt проверяет границы индекса активности внутри дня.
func activityAt(day *models.Day, activityIndex int) (*models.Activity, error) {
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return nil, ErrInvalidActivityIndex
	}
	return &day.Activities[activityIndex], nil
}
