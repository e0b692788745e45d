package entity

// Dashboard is everything one search returns. Forecast and AirQuality are optional
// and stay empty when their fetch fails.
type Dashboard struct {
	Weather    WeatherPayload  `json:"weather"`
	Forecast   []DailyForecast `json:"forecast"`
	AirQuality *AirQuality     `json:"airQuality,omitempty"`
}
