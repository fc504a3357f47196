package providers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vbonduro/fishedex/internal/weather"
)

// ForecastProvider reads current conditions plus today's daily forecast
// from Open-Meteo.
type ForecastProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewForecastProvider(client *http.Client, baseURL string) *ForecastProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastProvider{
		name:    "openmeteo-forecast",
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-forecast"),
	}
}

func (p *ForecastProvider) Name() string {
	return p.name
}

// Fetch ignores day: the forecast endpoint always answers for now.
func (p *ForecastProvider) Fetch(ctx context.Context, _ time.Time, at weather.Coordinates) (*weather.Report, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(at.Latitude))
	values.Set("longitude", formatCoord(at.Longitude))
	values.Set("current", "temperature_2m,weathercode,relative_humidity_2m,wind_speed_10m,wind_direction_10m,surface_pressure")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	imperial(values)

	body, err := doRequest(ctx, p.client, p.circuit, p.name, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Current *struct {
			Temperature   *float64 `json:"temperature_2m"`
			WeatherCode   *int     `json:"weathercode"`
			Humidity      *float64 `json:"relative_humidity_2m"`
			WindSpeed     *float64 `json:"wind_speed_10m"`
			WindDirection *float64 `json:"wind_direction_10m"`
			Pressure      *float64 `json:"surface_pressure"`
		} `json:"current"`
		Daily struct {
			Time             []string   `json:"time"`
			TemperatureMax   []*float64 `json:"temperature_2m_max"`
			TemperatureMin   []*float64 `json:"temperature_2m_min"`
			PrecipitationSum []*float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}
	if err := decode(p.name, body, &payload); err != nil {
		return nil, err
	}
	if payload.Current == nil {
		return nil, &weather.UpstreamError{
			Provider: p.name,
			Message:  "No current weather data available",
			Err:      weather.ErrNoData,
		}
	}

	cur := payload.Current
	report := &weather.Report{
		Temperature:     cur.Temperature,
		TemperatureUnit: weather.Fahrenheit,
		Conditions:      conditionOf(cur.WeatherCode),
		Humidity:        cur.Humidity,
		WindSpeed:       orZero(cur.WindSpeed),
		WindDirection:   formatDegrees(cur.WindDirection),
		Pressure:        cur.Pressure,
	}
	if len(payload.Daily.Time) > 0 {
		report.TemperatureMax = first(payload.Daily.TemperatureMax)
		report.TemperatureMin = first(payload.Daily.TemperatureMin)
		report.Precipitation = first(payload.Daily.PrecipitationSum)
	}
	return report, nil
}
