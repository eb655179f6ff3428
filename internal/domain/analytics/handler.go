package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicops/scheduler/internal/domain/schedule"
)

type Handler struct {
	reporter *Reporter
}

func NewHandler(rep *Reporter) *Handler {
	return &Handler{reporter: rep}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/analytics/durations", h.AnalyzeDurations)
	api.POST("/analytics/staff-efficiency", h.StaffEfficiency)
	api.POST("/analytics/utilization", h.Utilization)
	api.POST("/analytics/scheduling-efficiency", h.SchedulingEfficiency)
	api.POST("/analytics/wellness-impact", h.WellnessImpact)
	api.POST("/analytics/recommendations", h.Recommendations)
	api.POST("/analytics/performance", h.Performance)
}

type reportRequest struct {
	Date            time.Time          `json:"date"`
	Tasks           []schedule.Task    `json:"tasks"`
	ActualDurations map[string]float64 `json:"actual_durations,omitempty"`
	CompletionLog   *CompletionLog     `json:"completion_log,omitempty"`
}

func (h *Handler) bindDated(c echo.Context, req *reportRequest) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	return nil
}

func (h *Handler) AnalyzeDurations(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.reporter.AnalyzeDurations(req.Tasks, req.ActualDurations))
}

func (h *Handler) StaffEfficiency(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.reporter.StaffEfficiency(req.Tasks))
}

func (h *Handler) Utilization(c echo.Context) error {
	var req reportRequest
	if err := h.bindDated(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.reporter.UtilizationReport(req.Tasks, req.Date))
}

func (h *Handler) SchedulingEfficiency(c echo.Context) error {
	var req reportRequest
	if err := h.bindDated(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.reporter.SchedulingEfficiency(req.Tasks, req.Date, req.CompletionLog))
}

func (h *Handler) WellnessImpact(c echo.Context) error {
	var req reportRequest
	if err := h.bindDated(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.reporter.WellnessImpact(req.Tasks, req.Date))
}

type recommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

func (h *Handler) Recommendations(c echo.Context) error {
	var req reportRequest
	if err := h.bindDated(c, &req); err != nil {
		return err
	}
	recs := h.reporter.OptimizationRecommendations(req.Tasks, req.Date, req.ActualDurations, req.CompletionLog)
	return c.JSON(http.StatusOK, recommendationsResponse{Recommendations: recs})
}

func (h *Handler) Performance(c echo.Context) error {
	var req reportRequest
	if err := h.bindDated(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.reporter.PerformanceScore(req.Tasks, req.Date, req.ActualDurations, req.CompletionLog))
}
