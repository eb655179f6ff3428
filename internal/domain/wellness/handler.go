package wellness

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/schedule"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/wellness/metrics", h.Metrics)
	api.POST("/wellness/breaks", h.BreakRequirements)
	api.POST("/wellness/can-accept", h.CanAcceptTask)
	api.POST("/wellness/summary", h.Summary)
	api.POST("/wellness/recommendations", h.Recommendations)
}

type metricsRequest struct {
	StaffID string          `json:"staff_id"`
	Date    time.Time       `json:"date"`
	Tasks   []schedule.Task `json:"tasks"`
}

func (h *Handler) Metrics(c echo.Context) error {
	var req metricsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StaffID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "staff_id is required")
	}
	if req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	metrics, err := h.svc.Metrics(req.StaffID, req.Tasks, req.Date)
	if err != nil {
		if errors.Is(err, catalog.ErrStaffNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, metrics)
}

type breaksRequest struct {
	StaffID string          `json:"staff_id"`
	Now     time.Time       `json:"now"`
	Tasks   []schedule.Task `json:"tasks"`
}

type breaksResponse struct {
	Requirements []BreakRequirement `json:"requirements"`
}

func (h *Handler) BreakRequirements(c echo.Context) error {
	var req breaksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StaffID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "staff_id is required")
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	return c.JSON(http.StatusOK, breaksResponse{Requirements: h.svc.BreakRequirements(req.StaffID, req.Tasks, req.Now)})
}

type canAcceptRequest struct {
	StaffID    string          `json:"staff_id"`
	Procedure  string          `json:"procedure"`
	ProposedAt time.Time       `json:"proposed_at"`
	Tasks      []schedule.Task `json:"tasks"`
}

func (h *Handler) CanAcceptTask(c echo.Context) error {
	var req canAcceptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StaffID == "" || req.Procedure == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "staff_id and procedure are required")
	}
	if req.ProposedAt.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "proposed_at is required")
	}
	return c.JSON(http.StatusOK, h.svc.CanAcceptTask(req.StaffID, req.Procedure, req.Tasks, req.ProposedAt))
}

type summaryRequest struct {
	Date  time.Time       `json:"date"`
	Tasks []schedule.Task `json:"tasks"`
}

func (h *Handler) Summary(c echo.Context) error {
	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	return c.JSON(http.StatusOK, h.svc.Summary(req.Tasks, req.Date))
}

type recommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

func (h *Handler) Recommendations(c echo.Context) error {
	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	return c.JSON(http.StatusOK, recommendationsResponse{Recommendations: h.svc.WorkloadRecommendations(req.Tasks, req.Date)})
}
