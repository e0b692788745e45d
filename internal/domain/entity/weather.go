package entity

import "time"

// Coordinates locates a resolved city.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions holds the provider's current observation in metric units.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	TempMin       float64 `json:"tempMin"`
	TempMax       float64 `json:"tempMax"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	Humidity      int     `json:"humidity"`
	Pressure      int     `json:"pressure"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
}

// WeatherPayload is the result of a successful city resolution.
// Label is what the user typed, ProviderName what the provider calls the city.
type WeatherPayload struct {
	Label          string            `json:"label"`
	ProviderName   string            `json:"providerName"`
	Country        string            `json:"country"`
	Coordinates    Coordinates       `json:"coordinates"`
	Current        CurrentConditions `json:"current"`
	MatchedQuery   string            `json:"matchedQuery"`
	Attempts       int               `json:"attempts"`
	ObservedAt     time.Time         `json:"observedAt"`
	TimezoneOffset int               `json:"timezoneOffset"`
}

// Location returns the fixed zone of the city, derived from the provider offset.
func (p WeatherPayload) Location() *time.Location {
	return time.FixedZone("", p.TimezoneOffset)
}
