package providers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vbonduro/fishedex/internal/weather"
)

// OpenWeatherProvider reads current conditions from OpenWeatherMap. It
// stands in for ForecastProvider when an API key is configured.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openweathermap"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, _ time.Time, at weather.Coordinates) (*weather.Report, error) {
	if p.apiKey == "" {
		return nil, &weather.UpstreamError{Provider: p.name, Message: "OpenWeather API key is not configured"}
	}

	values := url.Values{}
	values.Set("lat", formatCoord(at.Latitude))
	values.Set("lon", formatCoord(at.Longitude))
	values.Set("appid", p.apiKey)
	values.Set("units", "imperial")

	body, err := doRequest(ctx, p.client, p.circuit, p.name, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Main struct {
			Temp     *float64 `json:"temp"`
			TempMax  *float64 `json:"temp_max"`
			TempMin  *float64 `json:"temp_min"`
			Humidity *float64 `json:"humidity"`
			Pressure *float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Rain struct {
			OneH   *float64 `json:"1h"`
			ThreeH *float64 `json:"3h"`
		} `json:"rain"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	}
	if err := decode(p.name, body, &payload); err != nil {
		return nil, err
	}

	conditions := weather.Unknown
	if len(payload.Weather) > 0 && payload.Weather[0].Main != "" {
		conditions = payload.Weather[0].Main
	}

	precip := payload.Rain.OneH
	if precip == nil {
		precip = payload.Rain.ThreeH
	}

	return &weather.Report{
		Temperature:     payload.Main.Temp,
		TemperatureMax:  payload.Main.TempMax,
		TemperatureMin:  payload.Main.TempMin,
		TemperatureUnit: weather.Fahrenheit,
		Conditions:      conditions,
		Humidity:        payload.Main.Humidity,
		WindSpeed:       orZero(payload.Wind.Speed),
		WindDirection:   formatDegrees(payload.Wind.Deg),
		Pressure:        payload.Main.Pressure,
		Precipitation:   precip,
	}, nil
}
