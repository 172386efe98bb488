// Package read реализует HTTP-обработчик получения одной поездки по идентификатору.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/travel-itinerary/internal/http/middlewarectx"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/response"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/sl"
	"github.com/magabrotheeeer/travel-itinerary/internal/models"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

// Handler обрабатывает запросы на получение поездки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает операции с поездками, необходимые обработчику.
type Service interface {
	Read(ctx context.Context, userUID, tripID string) (*models.Trip, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trip.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	useruid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || useruid == "" {
		log.Error("useruid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	tripID := chi.URLParam(r, "id")

	trip, err := h.service.Read(r.Context(), useruid, tripID)
	if err != nil {
		if errors.Is(err, mongodb.ErrTripNotFound) {
			log.Error("trip not found", slog.String("trip_id", tripID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Trip not found or unauthorized"))
			return
		}
		log.Error("failed to read trip", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read trip"))
		return
	}

	render.JSON(w, r, trip)
}
