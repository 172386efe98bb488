// Package create реализует HTTP-обработчик добавления активности в день поездки.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/travel-itinerary/internal/http/middlewarectx"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/response"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/sl"
	"github.com/magabrotheeeer/travel-itinerary/internal/models"
	services "github.com/magabrotheeeer/travel-itinerary/internal/services/trip"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

// Request — входные данные для добавления активности
type Request struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Cost        float64 `json:"cost"`
}

// Handler обрабатывает запросы на добавление активности.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает операции с поездками, необходимые обработчику.
type Service interface {
	AddActivity(ctx context.Context, userUID, tripID string, dayIndex int, activity models.Activity) (*models.Trip, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activity.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

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

	activity := models.Activity{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		Location:    req.Location,
		Cost:        req.Cost,
	}

	trip, err := h.service.AddActivity(r.Context(), useruid, tripID, dayIndex, activity)
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
			log.Error("failed to add activity", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add activity"))
		}
		return
	}

	log.Info("activity added", slog.String("trip_id", tripID), slog.Int("day_index", dayIndex))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, trip)
}
