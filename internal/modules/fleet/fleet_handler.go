package fleet

import (
	"net/http"

	"freight-booking/internal/middleware"
	"freight-booking/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for trucks and drivers.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new fleet handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the fleet routes. Registration is agent-only; reads
// are open to any authenticated user so consumers can browse nearby trucks.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	agent := middleware.RequireRole(models.RoleAgent)

	g.GET("/trucks", h.ListTrucks)
	g.POST("/trucks", h.AddTruck, agent)
	g.GET("/drivers", h.ListDrivers)
	g.POST("/drivers", h.AddDriver, agent)
	g.GET("/truck-types", h.ListTruckTypes)
}

func (h *Handler) AddTruck(c echo.Context) error {
	var req models.AddTruckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	truck, err := h.svc.AddTruck(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.AddTruck: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to register truck"})
	}

	return c.JSON(http.StatusCreated, truck)
}

func (h *Handler) AddDriver(c echo.Context) error {
	var req models.AddDriverRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	driver, err := h.svc.AddDriver(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.AddDriver: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to register driver"})
	}

	return c.JSON(http.StatusCreated, driver)
}

func (h *Handler) ListTrucks(c echo.Context) error {
	availableOnly := c.QueryParam("available") == "true"

	trucks, err := h.svc.ListTrucks(c.Request().Context(), availableOnly)
	if err != nil {
		c.Logger().Error("Handler.ListTrucks: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list trucks"})
	}
	return c.JSON(http.StatusOK, trucks)
}

func (h *Handler) ListDrivers(c echo.Context) error {
	availableOnly := c.QueryParam("available") == "true"

	drivers, err := h.svc.ListDrivers(c.Request().Context(), availableOnly)
	if err != nil {
		c.Logger().Error("Handler.ListDrivers: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list drivers"})
	}
	return c.JSON(http.StatusOK, drivers)
}

func (h *Handler) ListTruckTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.TruckTypes(c.Request().Context()))
}
