package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
)

// Las notificaciones son siempre del propio actor; basta con autenticación.
func runNotificationRouter(g *echo.Group, ctrl *controllers.NotificationController) {
	g.GET("/notifications", ctrl.GetNotifications)
	g.PUT("/notifications/:id/read", ctrl.MarkRead)
	g.PUT("/notifications/read-all", ctrl.MarkAllRead)
}
