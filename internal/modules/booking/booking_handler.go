package booking

import (
	"net/http"

	"freight-booking/internal/middleware"
	"freight-booking/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for bookings.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new booking handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the booking routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	agent := middleware.RequireRole(models.RoleAgent)
	consumer := middleware.RequireRole(models.RoleConsumer)

	g.POST("", h.CreateBooking, consumer)
	g.GET("", h.ListBookings)
	g.GET("/stats", h.GetStats, agent)
	g.POST("/quote", h.GetQuote)
	g.GET("/:bookingId", h.GetBookingDetails)
	g.PATCH("/:bookingId/status", h.UpdateStatus, agent)
	g.POST("/:bookingId/assign", h.AssignTruck, agent)
	g.POST("/:bookingId/cancel", h.CancelBooking, consumer)
	g.POST("/:bookingId/track", h.ReportTracking, agent)
	g.GET("/:bookingId/track", h.GetTracking)
}

// RegisterReportRoutes mounts the agent reporting routes.
func (h *Handler) RegisterReportRoutes(g *echo.Group) {
	g.GET("/earnings", h.GetEarnings, middleware.RequireRole(models.RoleAgent))
}

func (h *Handler) CreateBooking(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	b, err := h.svc.CreateBooking(c.Request().Context(), userID, req)
	if err != nil {
		if err == models.ErrUnknownTruckType {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Unknown truck type"})
		}
		c.Logger().Error("Handler.CreateBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create booking"})
	}

	return c.JSON(http.StatusCreated, b)
}

// ListBookings returns the caller's own bookings for a consumer, or every
// booking (optionally filtered by ?status=) for an agent.
func (h *Handler) ListBookings(c echo.Context) error {
	userID := c.Get("userID").(string)
	role := c.Get("userRole").(string)

	if role == string(models.RoleAgent) {
		status := models.BookingStatus(c.QueryParam("status"))
		bookings, err := h.svc.ListAllBookings(c.Request().Context(), status)
		if err != nil {
			if err == models.ErrInvalidTransition {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Unknown status filter"})
			}
			c.Logger().Error("Handler.ListBookings: ", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list bookings"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"bookings": bookings, "total": len(bookings)})
	}

	bookings, err := h.svc.ListConsumerBookings(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListBookings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list bookings"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": bookings, "total": len(bookings)})
}

func (h *Handler) GetBookingDetails(c echo.Context) error {
	userID := c.Get("userID").(string)
	role := c.Get("userRole").(string)

	bookingID := c.Param("bookingId")

	b, err := h.svc.GetBookingDetails(c.Request().Context(), bookingID, userID, role)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		c.Logger().Error("Handler.GetBookingDetails: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve booking"})
	}

	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	bookingID := c.Param("bookingId")

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	b, err := h.svc.UpdateStatus(c.Request().Context(), bookingID, req.Status)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		if err == models.ErrInvalidTransition {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Status transition not allowed"})
		}
		c.Logger().Error("Handler.UpdateStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update status"})
	}

	return c.JSON(http.StatusOK, b)
}

func (h *Handler) AssignTruck(c echo.Context) error {
	bookingID := c.Param("bookingId")

	var req models.AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	b, err := h.svc.Assign(c.Request().Context(), bookingID, req.TruckID, req.DriverID)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		if err == models.ErrInvalidTransition {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Booking is not pending"})
		}
		if err == models.ErrResourceUnavailable {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Truck or driver is not available"})
		}
		c.Logger().Error("Handler.AssignTruck: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to assign truck"})
	}

	return c.JSON(http.StatusOK, b)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	userID := c.Get("userID").(string)

	bookingID := c.Param("bookingId")

	b, err := h.svc.Cancel(c.Request().Context(), bookingID, userID)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		if err == models.ErrBookingNotCancellable {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Booking can no longer be cancelled"})
		}
		c.Logger().Error("Handler.CancelBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to cancel booking"})
	}

	return c.JSON(http.StatusOK, b)
}

func (h *Handler) GetQuote(c echo.Context) error {
	var req models.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	quote, err := h.svc.GetQuote(c.Request().Context(), req)
	if err != nil {
		if err == models.ErrUnknownTruckType {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Unknown truck type"})
		}
		c.Logger().Error("Handler.GetQuote: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to compute quote"})
	}

	return c.JSON(http.StatusOK, quote)
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetStats: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to compute stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetEarnings(c echo.Context) error {
	report, err := h.svc.Earnings(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetEarnings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to compute earnings"})
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) ReportTracking(c echo.Context) error {
	bookingID := c.Param("bookingId")

	var req models.TrackingUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	snap, err := h.svc.ReportTracking(c.Request().Context(), bookingID, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		c.Logger().Error("Handler.ReportTracking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to record location"})
	}

	return c.JSON(http.StatusOK, snap)
}

func (h *Handler) GetTracking(c echo.Context) error {
	userID := c.Get("userID").(string)
	role := c.Get("userRole").(string)

	bookingID := c.Param("bookingId")

	snap, err := h.svc.GetTracking(c.Request().Context(), bookingID, userID, role)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "No tracking data for this booking"})
		}
		c.Logger().Error("Handler.GetTracking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve tracking data"})
	}

	return c.JSON(http.StatusOK, snap)
}
