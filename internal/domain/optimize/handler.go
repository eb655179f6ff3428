package optimize

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/schedule"
)

type Handler struct {
	optimizer *Optimizer
}

func NewHandler(opt *Optimizer) *Handler {
	return &Handler{optimizer: opt}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/optimize", h.Optimize)
	api.POST("/optimize/suggest", h.SuggestOptimalTime)
}

type optimizeRequest struct {
	TargetDate time.Time       `json:"target_date"`
	Tasks      []schedule.Task `json:"tasks"`
}

func (h *Handler) Optimize(c echo.Context) error {
	var req optimizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.TargetDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "target_date is required")
	}
	return c.JSON(http.StatusOK, h.optimizer.Optimize(req.Tasks, req.TargetDate))
}

type suggestRequest struct {
	Procedure  string                  `json:"procedure"`
	Complexity catalog.ComplexityLevel `json:"complexity"`
	TargetDate time.Time               `json:"target_date"`
	Tasks      []schedule.Task         `json:"tasks"`
}

type suggestResponse struct {
	Suggestions []schedule.AlternativeSlot `json:"suggestions"`
}

func (h *Handler) SuggestOptimalTime(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Procedure == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "procedure is required")
	}
	if req.TargetDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "target_date is required")
	}
	if req.Complexity == "" {
		req.Complexity = catalog.ComplexityStandard
	}
	if !req.Complexity.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid complexity level")
	}

	slots := h.optimizer.SuggestOptimalTime(req.Procedure, req.Complexity, req.TargetDate, req.Tasks)
	return c.JSON(http.StatusOK, suggestResponse{Suggestions: slots})
}
