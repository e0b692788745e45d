package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-weather/internal/domain/model"
	"go-weather/internal/domain/usecase/health"
)

type HealthController struct {
	api     *echo.Group
	useCase health.UseCase
}

func NewHealthController(api *echo.Group, useCase health.UseCase) *HealthController {
	return &HealthController{api: api, useCase: useCase}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth())
}

// CheckHealth godoc
// @Summary Health check
// @Description Report the status of the search session store and the queue workers
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse "Service is up"
// @Failure 503 {object} model.HealthResponse "A component is down"
// @Router /health [get]
func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		healthResponse := controller.useCase.CheckHealth(c.Request().Context())

		status := http.StatusOK
		if healthResponse.Status == model.StatusDown {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, healthResponse)
	}
}
