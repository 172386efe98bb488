// Package update реализует HTTP-обработчик частичного обновления одного дня поездки.
//
// День адресуется позиционным индексом в массиве дней поездки.
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

// Handler обрабатывает запросы на обновление дня поездки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает операции с поездками, необходимые обработчику.
type Service interface {
	UpdateDay(ctx context.Context, userUID, tripID string, dayIndex int, req models.UpdateDayRequest) (*models.Trip, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.day.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateDayRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
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

	trip, err := h.service.UpdateDay(r.Context(), useruid, tripID, dayIndex, req)
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
		default:
			log.Error("failed to update day", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update day"))
		}
		return
	}

	log.Info("day updated", slog.String("trip_id", tripID), slog.Int("day_index", dayIndex))
	render.JSON(w, r, trip)
}
