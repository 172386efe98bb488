// Package update реализует HTTP-обработчик частичного обновления активности.
//
// Активность адресуется парой позиционных индексов: день и активность внутри дня.
// Обновляются только переданные поля, остальные сохраняют прежние значения.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/travel-itinerary/internal/http/middlewarectx"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/response"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/sl"
	"github.com/magabrotheeeer/travel-itinerary/internal/models"
	services "github.com/magabrotheeeer/travel-itinerary/internal/services/trip"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

// Handler обрабатывает запросы на обновление активности.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает операции с поездками, необходимые обработчику.
type Service interface {
	UpdateActivity(ctx context.Context, userUID, tripID string, dayIndex, activityIndex int, patch models.ActivityPatch) (*models.Trip, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activity.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var patch models.ActivityPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded")

	useruid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || useruid == "" {
		log.Error("useruid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	tripID := chi.URLParam(r, "id")
	dayIndex, err := strconv.Atoi(chi.URLParam(r, "dayIndex"))
	if err != nil {
		log.Error("failed to decode day index from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid day index"))
		return
	}
	activityIndex, err := strconv.Atoi(chi.URLParam(r, "activityIndex"))
	if err != nil {
		log.Error("failed to decode activity index from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid activity index"))
		return
	}

	trip, err := h.service.UpdateActivity(r.Context(), useruid, tripID, dayIndex, activityIndex, patch)
	if err != nil {
		switch {
		case errors.Is(err, mongodb.ErrTripNotFound):
			log.Error("trip not found", slog.String("trip_id", tripID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Trip not found or unauthorized"))
		case errors.Is(err, services.ErrInvalidDayIndex):
			log.Error("invalid day index", slog.Int("day_index", dayIndex))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid day index"))
		case errors.Is(err, services.ErrInvalidActivityIndex):
			log.Error("invalid activity index", slog.Int("activity_index", activityIndex))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid activity index"))
		default:
			log.Error("failed to update activity", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update activity"))
		}
		return
	}

	log.Info("activity updated",
		slog.String("trip_id", tripID),
		slog.Int("day_index", dayIndex),
		slog.Int("activity_index", activityIndex))
	render.JSON(w, r, trip)
}
