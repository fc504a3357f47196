package weather

// Fahrenheit is the only temperature unit reports are produced in.
const Fahrenheit = "fahrenheit"

// Report is the normalized weather record every provider produces.
// Fields a provider cannot supply are nil and encode as JSON null.
type Report struct {
	Temperature     *float64 `json:"temperature"`
	TemperatureMax  *float64 `json:"temperature_max"`
	TemperatureMin  *float64 `json:"temperature_min"`
	TemperatureUnit string   `json:"temperature_unit"`
	Conditions      string   `json:"conditions"`
	Humidity        *float64 `json:"humidity"`
	WindSpeed       float64  `json:"wind_speed"`
	WindDirection   *string  `json:"wind_direction"`
	Pressure        *float64 `json:"pressure"`
	Precipitation   *float64 `json:"precipitation"`
}
