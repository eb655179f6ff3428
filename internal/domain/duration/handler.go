package duration

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicops/scheduler/internal/domain/catalog"
)

type Handler struct {
	calc *Calculator
}

func NewHandler(calc *Calculator) *Handler {
	return &Handler{calc: calc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/procedures/:title/duration", h.GetDuration)
	api.POST("/complexity/estimate", h.EstimateComplexity)
}

func (h *Handler) GetDuration(c echo.Context) error {
	level := catalog.ComplexityStandard
	if raw := c.QueryParam("complexity"); raw != "" {
		level = catalog.ComplexityLevel(raw)
		if !level.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid complexity level")
		}
	}

	breakdown, err := h.calc.Breakdown(c.Param("title"), level)
	if err != nil {
		if errors.Is(err, catalog.ErrProcedureNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "procedure not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, breakdown)
}

type complexityRequest struct {
	PatientAge     int      `json:"patient_age"`
	PreviousCycles int      `json:"previous_cycles"`
	Diagnoses      []string `json:"diagnoses"`
}

type complexityResponse struct {
	Complexity catalog.ComplexityLevel `json:"complexity"`
}

func (h *Handler) EstimateComplexity(c echo.Context) error {
	var req complexityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientAge < 0 || req.PreviousCycles < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "age and previous cycles must be non-negative")
	}
	level := EstimateComplexity(req.PatientAge, req.PreviousCycles, req.Diagnoses)
	return c.JSON(http.StatusOK, complexityResponse{Complexity: level})
}
