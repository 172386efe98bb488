// Package geocoder реализует клиент внешнего сервиса геокодирования Nominatim.
// Клиент без состояния: запрос просто проксируется провайдеру, ретраев и
// отдельного кеша нет.
package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/magabrotheeeer/travel-itinerary/internal/models"
)

// ErrEmptyAddress возвращается при пустом адресе в запросе.
var ErrEmptyAddress = errors.New("address is empty")

// ErrNoMatch возвращается, когда провайдер не нашёл ни одного совпадения.
var ErrNoMatch = errors.New("no match for address")

// UpstreamError описывает сбой провайдера: транспортную ошибку или не-2xx ответ.
// StatusCode равен нулю, если ответ не был получен вовсе.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("geocoding provider error (status %d): %s", e.StatusCode, e.Detail)
}

// Config настройки клиента геокодера.
type Config struct {
	BaseURL   string
	UserAgent string // Обязателен по условиям использования Nominatim
	Timeout   time.Duration
}

// Client клиент Nominatim.
type Client struct {
	client *resty.Client
}

// New создает клиент геокодера с отдельным User-Agent,
// идентифицирующим приложение перед провайдером.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cli := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Client{client: cli}
}

// searchResult — элемент ответа Nominatim; координаты приходят строками.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode переводит свободный текст адреса в координаты.
// Запрашивает у провайдера не более одного совпадения.
func (c *Client) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	const op = "geocoder.Geocode"

	if address == "" {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, ErrEmptyAddress)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"q":      address,
			"limit":  "1",
		}).
		Get("/search")
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, &UpstreamError{Detail: err.Error()})
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, &UpstreamError{
			StatusCode: resp.StatusCode(),
			Detail:     string(resp.Body()),
		})
	}

	var results []searchResult
	if err = json.Unmarshal(resp.Body(), &results); err != nil {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, &UpstreamError{
			StatusCode: resp.StatusCode(),
			Detail:     err.Error(),
		})
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, ErrNoMatch)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Coordinates{Lat: lat, Lng: lng}, nil
}
