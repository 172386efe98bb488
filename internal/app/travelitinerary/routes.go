// Package travelitinerary предоставляет маршруты для основного приложения.
package travelitinerary

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	activitycreate "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/activity/create"
	activityremove "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/activity/remove"
	activityupdate "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/activity/update"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/auth/register"
	dayupdate "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/day/update"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/geocode"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/health"
	tripcreate "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/trip/create"
	triplist "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/trip/list"
	tripread "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/trip/read"
	tripremove "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/trip/remove"
	tripupdate "github.com/magabrotheeeer/travel-itinerary/internal/http/handlers/trip/update"
	"github.com/magabrotheeeer/travel-itinerary/internal/http/middlewarectx"

	"github.com/magabrotheeeer/travel-itinerary/internal/geocoder"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/travel-itinerary/internal/services/auth"
	tripservice "github.com/magabrotheeeer/travel-itinerary/internal/services/trip"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService, tripService *tripservice.TripService,
	geocoderClient *geocoder.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/users/register", register.New(logger, authService).ServeHTTP)
	r.Post("/users/login", login.New(logger, authService).ServeHTTP)
	r.Get("/geocode", geocode.New(logger, geocoderClient).ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
		r.Get("/users/me", me.New(logger, authService).ServeHTTP)
		r.Post("/trips", tripcreate.New(logger, tripService).ServeHTTP)
		r.Get("/trips", triplist.New(logger, tripService).ServeHTTP)
		r.Get("/trips/{id}", tripread.New(logger, tripService).ServeHTTP)
		r.Patch("/trips/{id}", tripupdate.New(logger, tripService).ServeHTTP)
		r.Delete("/trips/{id}", tripremove.New(logger, tripService).ServeHTTP)
		r.Patch("/trips/{id}/days/{dayIndex}", dayupdate.New(logger, tripService).ServeHTTP)
		r.Post("/trips/{id}/days/{dayIndex}/activities", activitycreate.New(logger, tripService).ServeHTTP)
		r.Patch("/trips/{id}/days/{dayIndex}/activities/{activityIndex}", activityupdate.New(logger, tripService).ServeHTTP)
		r.Delete("/trips/{id}/days/{dayIndex}/activities/{activityIndex}", activityremove.New(logger, tripService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
