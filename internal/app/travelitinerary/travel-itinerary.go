// Package travelitinerary собирает и запускает основное приложение.
package travelitinerary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magabrotheeeer/travel-itinerary/internal/cache"
	"github.com/magabrotheeeer/travel-itinerary/internal/config"
	"github.com/magabrotheeeer/travel-itinerary/internal/geocoder"
	"github.com/magabrotheeeer/travel-itinerary/internal/lib/jwt"
	"github.com/magabrotheeeer/travel-itinerary/internal/migrations"
	authservice "github.com/magabrotheeeer/travel-itinerary/internal/services/auth"
	tripservice "github.com/magabrotheeeer/travel-itinerary/internal/services/trip"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage"
	"github.com/magabrotheeeer/travel-itinerary/internal/storage/mongodb"
)

type App struct {
	server      *http.Server
	logger      *slog.Logger
	db          *storage.Storage
	mongoClient *mongo.Client
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	mongoCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	mongoClient, err := mongodb.Connect(mongoCtx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	tripStore := mongodb.NewTripStore(mongoClient, cfg.MongoDB)

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	tripService := tripservice.NewTripService(tripStore, cacheRedis, logger)
	geocoderClient := geocoder.New(geocoder.Config{
		BaseURL:   cfg.GeocoderBaseURL,
		UserAgent: cfg.GeocoderAgent,
		Timeout:   cfg.GeocoderTimeout,
	})

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker, authService, tripService, geocoderClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:      srv,
		logger:      logger,
		db:          db,
		mongoClient: mongoClient,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		if derr := a.mongoClient.Disconnect(timeoutCtx); derr != nil {
			a.logger.Error("failed to disconnect mongo client", slog.Any("err", derr))
		}
		return err
	}
}
