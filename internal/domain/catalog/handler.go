package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	catalog  *Catalog
	registry *Registry
}

func NewHandler(cat *Catalog, reg *Registry) *Handler {
	return &Handler{catalog: cat, registry: reg}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/procedures", h.ListProcedures)
	api.GET("/procedures/:title", h.GetProcedure)
	api.GET("/staff", h.ListStaff)
	api.GET("/rooms", h.ListRooms)
	api.GET("/equipment", h.ListEquipment)
}

func (h *Handler) ListProcedures(c echo.Context) error {
	if category := c.QueryParam("category"); category != "" {
		return c.JSON(http.StatusOK, h.catalog.ByCategory(ProcedureCategory(category)))
	}
	if role := c.QueryParam("role"); role != "" {
		return c.JSON(http.StatusOK, h.catalog.ByRole(role))
	}
	return c.JSON(http.StatusOK, h.catalog.Procedures())
}

func (h *Handler) GetProcedure(c echo.Context) error {
	proc, ok := h.catalog.Procedure(c.Param("title"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "procedure not found")
	}
	return c.JSON(http.StatusOK, proc)
}

func (h *Handler) ListStaff(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.AllStaff())
}

func (h *Handler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Rooms())
}

func (h *Handler) ListEquipment(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Equipment())
}
