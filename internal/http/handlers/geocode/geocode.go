// Package geocode реализует HTTP-обработчик прямого геокодирования адреса.
//
// Обработчик проксирует запрос во внешний геокодер и возвращает координаты
// первого найденного совпадения. Статус ошибки внешнего сервиса пробрасывается
// клиенту как есть.
package geocode

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/travel-itinerary/internal/geocoder"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/response"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/sl"
	"github.com/magabrotheeeer/travel-itinerary/internal/models"
)

// Handler обрабатывает запросы на геокодирование адреса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает операции геокодирования, необходимые обработчику.
type Service interface {
	Geocode(ctx context.Context, address string) (models.Coordinates, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.geocode"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	address := r.URL.Query().Get("address")
	if address == "" {
		log.Error("address query parameter is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Address is required"))
		return
	}

	coords, err := h.service.Geocode(r.Context(), address)
	if err != nil {
		var upstreamErr *geocoder.UpstreamError
		switch {
		case errors.Is(err, geocoder.ErrEmptyAddress):
			log.Error("empty address")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Address is required"))
		case errors.Is(err, geocoder.ErrNoMatch):
			log.Error("no match for address", slog.String("address", address))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("No results found"))
		case errors.As(err, &upstreamErr) && upstreamErr.StatusCode != 0:
			log.Error("geocoding provider error",
				slog.Int("status", upstreamErr.StatusCode), sl.Err(err))
			w.WriteHeader(upstreamErr.StatusCode)
			render.JSON(w, r, response.Error("Geocoding service error"))
		default:
			log.Error("failed to geocode address", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to fetch geocoding data"))
		}
		return
	}

	log.Info("address geocoded", slog.String("address", address))
	render.JSON(w, r, coords)
}
