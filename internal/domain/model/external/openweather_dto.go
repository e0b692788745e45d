package external

// CurrentWeatherResponse represents the OpenWeatherMap /data/2.5/weather response
type CurrentWeatherResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []WeatherDescriptionDTO `json:"weather"`
	Main    MainDTO                 `json:"main"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Dt       int64 `json:"dt"`
	Timezone int   `json:"timezone"`
}

// WeatherDescriptionDTO is one entry of the "weather" array
type WeatherDescriptionDTO struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainDTO holds the temperature block shared by current and forecast responses
type MainDTO struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// ForecastResponse represents the OpenWeatherMap /data/2.5/forecast response
type ForecastResponse struct {
	List []ForecastItemDTO `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// ForecastItemDTO is a single 3-hour forecast step
type ForecastItemDTO struct {
	Dt      int64                   `json:"dt"`
	Main    MainDTO                 `json:"main"`
	Weather []WeatherDescriptionDTO `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

// AirPollutionResponse represents the OpenWeatherMap /data/2.5/air_pollution response
type AirPollutionResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}

// APIErrorResponse represents error responses from OpenWeatherMap.
// The API returns cod as a number or a string depending on the endpoint.
type APIErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
