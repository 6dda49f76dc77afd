package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runTicketRouter(g *echo.Group, ctrl *controllers.TicketController, permMW *middleware.PermissionMiddleware) {
	g.GET("/tickets", ctrl.GetTickets, permMW.Require(entities.ModuleTickets, entities.ActionView))
	g.GET("/tickets/deleted", ctrl.GetDeletedTickets, permMW.Require(entities.ModuleTickets, entities.ActionDelete))
	g.GET("/tickets/:id", ctrl.FindTicket, permMW.Require(entities.ModuleTickets, entities.ActionView))
	g.POST("/tickets", ctrl.CreateTicket, permMW.Require(entities.ModuleTickets, entities.ActionCreate))
	g.PUT("/tickets/:id", ctrl.UpdateTicket, permMW.Require(entities.ModuleTickets, entities.ActionEdit))
	g.DELETE("/tickets/:id", ctrl.DeleteTicket, permMW.Require(entities.ModuleTickets, entities.ActionDelete))
}
