package providers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vbonduro/fishedex/internal/weather"
)

// ArchiveProvider reads daily aggregates for past days from the Open-Meteo
// historical archive.
type ArchiveProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewArchiveProvider(client *http.Client, baseURL string) *ArchiveProvider {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}
	return &ArchiveProvider{
		name:    "openmeteo-archive",
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-archive"),
	}
}

func (p *ArchiveProvider) Name() string {
	return p.name
}

func (p *ArchiveProvider) Fetch(ctx context.Context, day time.Time, at weather.Coordinates) (*weather.Report, error) {
	date := day.Format("2006-01-02")

	values := url.Values{}
	values.Set("latitude", formatCoord(at.Latitude))
	values.Set("longitude", formatCoord(at.Longitude))
	values.Set("start_date", date)
	values.Set("end_date", date)
	values.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode,precipitation_sum,windspeed_10m_max")
	values.Set("timezone", "auto")
	imperial(values)

	body, err := doRequest(ctx, p.client, p.circuit, p.name, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Daily struct {
			Time             []string   `json:"time"`
			TemperatureMax   []*float64 `json:"temperature_2m_max"`
			TemperatureMin   []*float64 `json:"temperature_2m_min"`
			WeatherCode      []*int     `json:"weathercode"`
			PrecipitationSum []*float64 `json:"precipitation_sum"`
			WindSpeedMax     []*float64 `json:"windspeed_10m_max"`
		} `json:"daily"`
	}
	if err := decode(p.name, body, &payload); err != nil {
		return nil, err
	}

	daily := payload.Daily
	if len(daily.Time) == 0 {
		return nil, &weather.UpstreamError{
			Provider: p.name,
			Message:  "No historical weather data available for this date",
			Err:      weather.ErrNoData,
		}
	}

	hi, lo := first(daily.TemperatureMax), first(daily.TemperatureMin)
	var mean *float64
	if hi != nil && lo != nil {
		m := (*hi + *lo) / 2
		mean = &m
	}

	return &weather.Report{
		Temperature:     mean,
		TemperatureMax:  hi,
		TemperatureMin:  lo,
		TemperatureUnit: weather.Fahrenheit,
		Conditions:      conditionOf(first(daily.WeatherCode)),
		WindSpeed:       orZero(first(daily.WindSpeedMax)),
		Precipitation:   zeroIfNil(first(daily.PrecipitationSum)),
	}, nil
}
