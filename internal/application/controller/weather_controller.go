package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"go-weather/internal/domain/model"
	"go-weather/internal/domain/usecase/dashboard"
	"go-weather/internal/domain/usecase/resolver"
	"go-weather/pkg/msg"
	"go-weather/pkg/util/numberutils"
)

// SearchSessionHeader identifies the browser tab issuing searches. Searches sharing
// the header value supersede each other.
const SearchSessionHeader = "X-Search-Session"

type WeatherController struct {
	api             *echo.Group
	useCase         dashboard.UseCase
	iconURLTemplate string
}

func NewWeatherController(api *echo.Group, useCase dashboard.UseCase, iconURLTemplate string) *WeatherController {
	return &WeatherController{api: api, useCase: useCase, iconURLTemplate: iconURLTemplate}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.SearchWeather)
	controller.api.GET("/weather/candidates", controller.ListCandidates)
}

// SearchWeather godoc
// @Summary Search the weather of a city
// @Description Resolve a free-text city name (Chinese or English) and return current conditions, forecast and air quality
// @Tags weather
// @Produce json
// @Param city query string true "City name, e.g. 北京 or London"
// @Param days query int false "Number of forecast days to show"
// @Param X-Search-Session header string false "Search session id; a newer search with the same id supersedes this one"
// @Success 200 {object} model.DashboardView "Dashboard ready for display"
// @Failure 400 {object} model.ErrorResponse "Empty city name"
// @Failure 404 {object} model.ErrorResponse "City not found"
// @Failure 409 {object} model.ErrorResponse "Superseded by a newer search"
// @Failure 502 {object} model.ErrorResponse "Weather provider failure"
// @Router /weather [get]
func (controller *WeatherController) SearchWeather(c echo.Context) error {
	city := c.QueryParam("city")
	sessionID := c.Request().Header.Get(SearchSessionHeader)

	result, err := controller.useCase.Search(c.Request().Context(), sessionID, city)
	if err != nil {
		status, body := toErrorResponse(err)
		return c.JSON(status, body)
	}

	view := model.NewDashboardView(result, controller.iconURLTemplate)

	// out of range values show every fetched day
	days := numberutils.ToIntWithDefault(c.QueryParam("days"), 0)
	if numberutils.IsIntInRange(days, 1, len(view.Forecast)) {
		view.Forecast = view.Forecast[:days]
	}

	return c.JSON(http.StatusOK, view)
}

// ListCandidates godoc
// @Summary List candidate queries
// @Description Show the ordered provider queries a search for the city would try
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} model.CandidatesResponse "Ordered candidate queries"
// @Failure 400 {object} model.ErrorResponse "Empty city name"
// @Router /weather/candidates [get]
func (controller *WeatherController) ListCandidates(c echo.Context) error {
	city := c.QueryParam("city")

	candidates := controller.useCase.Candidates(city)
	if len(candidates) == 0 {
		status, body := toErrorResponse(resolver.ErrEmptyInput)
		return c.JSON(status, body)
	}

	return c.JSON(http.StatusOK, model.CandidatesResponse{City: candidates[0], Candidates: candidates})
}

// toErrorResponse maps search failures to a status and a displayable message.
// A rejected API key is a configuration problem and gets its own message.
func toErrorResponse(err error) (int, model.ErrorResponse) {
	var resErr *resolver.ResolutionError

	switch {
	case errors.Is(err, dashboard.ErrSuperseded):
		return http.StatusConflict, newErrorResponse("SUPERSEDED", "weather.error.superseded")
	case errors.As(err, &resErr) && resErr.Kind == resolver.EmptyInput:
		return http.StatusBadRequest, newErrorResponse("EMPTY_INPUT", "weather.error.empty-input")
	case errors.As(err, &resErr) && resErr.Kind == resolver.NotFound:
		return http.StatusNotFound, newErrorResponse("NOT_FOUND", "weather.error.not-found")
	case errors.As(err, &resErr) && resErr.IsAuthFailure():
		return http.StatusBadGateway, newErrorResponse("INVALID_API_KEY", "weather.error.invalid-key")
	default:
		return http.StatusBadGateway, newErrorResponse("PROVIDER_ERROR", "weather.error.provider")
	}
}

func newErrorResponse(code string, messageKey string) model.ErrorResponse {
	return model.ErrorResponse{Code: code, Message: msg.GetMessage(messageKey)}
}
