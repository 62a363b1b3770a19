package notification

import (
	"net/http"

	"freight-booking/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for in-app notifications.
type Handler struct {
	svc ServiceInterface
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the notification routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListNotifications)
	g.POST("/:notificationId/read", h.MarkRead)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	userID := c.Get("userID").(string)

	notifications, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListNotifications: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list notifications"})
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkRead(c echo.Context) error {
	userID := c.Get("userID").(string)

	notificationID := c.Param("notificationId")

	n, err := h.svc.MarkRead(c.Request().Context(), notificationID, userID)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Notification not found"})
		}
		c.Logger().Error("Handler.MarkRead: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update notification"})
	}
	return c.JSON(http.StatusOK, n)
}
