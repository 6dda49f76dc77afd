package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController, permMW *middleware.PermissionMiddleware) {
	g.GET("/reports/tickets", ctrl.GetTicketReport, permMW.Require(entities.ModuleReports, entities.ActionExport))
}
