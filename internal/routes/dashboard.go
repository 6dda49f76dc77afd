package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runDashboardRouter(g *echo.Group, ctrl *controllers.DashboardController, permMW *middleware.PermissionMiddleware) {
	g.GET("/dashboard", ctrl.GetDashboard, permMW.Require(entities.ModuleDashboard, entities.ActionView))
}
