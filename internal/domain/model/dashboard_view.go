package model

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"go-weather/internal/domain/entity"
	"go-weather/pkg/msg"
)

var windDirections = [8]string{"北风", "东北风", "东风", "东南风", "南风", "西南风", "西风", "西北风"}

var weekdays = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// DashboardView is the render-ready form of a search result. Every field is already
// formatted for display.
type DashboardView struct {
	City         string             `json:"city"`
	ProviderName string             `json:"providerName"`
	Country      string             `json:"country"`
	MatchedQuery string             `json:"matchedQuery"`
	Date         string             `json:"date"`
	Temperature  string             `json:"temperature"`
	FeelsLike    string             `json:"feelsLike"`
	TempMin      string             `json:"tempMin"`
	TempMax      string             `json:"tempMax"`
	Description  string             `json:"description"`
	IconURL      string             `json:"iconUrl"`
	Humidity     string             `json:"humidity"`
	Pressure     string             `json:"pressure"`
	Wind         string             `json:"wind"`
	Coordinates  entity.Coordinates `json:"coordinates"`
	Forecast     []ForecastDayView  `json:"forecast"`
	AirQuality   *AirQualityView    `json:"airQuality,omitempty"`
}

type ForecastDayView struct {
	Date              string `json:"date"`
	Weekday           string `json:"weekday"`
	TempMin           string `json:"tempMin"`
	TempMax           string `json:"tempMax"`
	Description       string `json:"description"`
	IconURL           string `json:"iconUrl"`
	PrecipProbability string `json:"precipProbability"`
}

type AirQualityView struct {
	Index      int                `json:"index"`
	Level      string             `json:"level"`
	Components map[string]float64 `json:"components"`
}

// CandidatesResponse lists the provider queries a search would try, in order
type CandidatesResponse struct {
	City       string   `json:"city"`
	Candidates []string `json:"candidates"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewDashboardView renders a dashboard. iconURLTemplate has a single %s for the icon code.
// Dates are shown in the city's own timezone.
func NewDashboardView(dashboard *entity.Dashboard, iconURLTemplate string) DashboardView {
	weather := dashboard.Weather
	current := weather.Current
	location := weather.Location()

	view := DashboardView{
		City:         weather.Label,
		ProviderName: weather.ProviderName,
		Country:      weather.Country,
		MatchedQuery: weather.MatchedQuery,
		Date:         DateLabel(weather.ObservedAt.In(location)),
		Temperature:  FormatTemperature(current.Temperature),
		FeelsLike:    FormatTemperature(current.FeelsLike),
		TempMin:      FormatTemperature(current.TempMin),
		TempMax:      FormatTemperature(current.TempMax),
		Description:  current.Description,
		IconURL:      IconURL(iconURLTemplate, current.Icon),
		Humidity:     strconv.Itoa(current.Humidity) + "%",
		Pressure:     strconv.Itoa(current.Pressure) + " hPa",
		Wind:         fmt.Sprintf("%s %d m/s", WindDirectionLabel(current.WindDirection), roundHalfUp(current.WindSpeed)),
		Coordinates:  weather.Coordinates,
		Forecast:     make([]ForecastDayView, 0, len(dashboard.Forecast)),
	}

	for _, day := range dashboard.Forecast {
		date := day.Date.In(location)
		view.Forecast = append(view.Forecast, ForecastDayView{
			Date:              fmt.Sprintf("%d月%d日", date.Month(), date.Day()),
			Weekday:           weekdays[date.Weekday()],
			TempMin:           FormatTemperature(day.TempMin),
			TempMax:           FormatTemperature(day.TempMax),
			Description:       day.Description,
			IconURL:           IconURL(iconURLTemplate, day.Icon),
			PrecipProbability: strconv.Itoa(roundHalfUp(day.PrecipProb*100)) + "%",
		})
	}

	if aq := dashboard.AirQuality; aq != nil {
		view.AirQuality = &AirQualityView{
			Index:      aq.Index,
			Level:      AirQualityLevel(aq.Index),
			Components: aq.Components,
		}
	}

	return view
}

// WindDirectionLabel maps degrees to one of eight compass labels, 45 degrees each
func WindDirectionLabel(degrees float64) string {
	index := roundHalfUp(degrees/45) % 8
	if index < 0 {
		index += 8
	}
	return windDirections[index]
}

// FormatTemperature rounds to whole degrees Celsius
func FormatTemperature(celsius float64) string {
	return strconv.Itoa(roundHalfUp(celsius)) + "°C"
}

// DateLabel formats t as a long Chinese date, e.g. 2025年10月17日星期五
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日%s", t.Year(), t.Month(), t.Day(), weekdays[t.Weekday()])
}

func IconURL(template string, icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf(template, icon)
}

// AirQualityLevel returns the label of an AQI index on the 1 to 5 scale
func AirQualityLevel(index int) string {
	key := "air-quality.level." + strconv.Itoa(index)
	if index < 1 || index > 5 || !msg.HasMessage(key) {
		return msg.GetMessage("air-quality.level.unknown")
	}
	return msg.GetMessage(key)
}

// roundHalfUp rounds halves towards positive infinity, so -2.5 becomes -2
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
