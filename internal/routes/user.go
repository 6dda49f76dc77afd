package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runUserRouter(g *echo.Group, ctrl *controllers.UserController, permMW *middleware.PermissionMiddleware) {
	g.GET("/users", ctrl.GetUsers, permMW.Require(entities.ModuleUsers, entities.ActionView))
	g.GET("/users/:id", ctrl.FindUser, permMW.Require(entities.ModuleUsers, entities.ActionView))
	g.POST("/users", ctrl.CreateUser, permMW.Require(entities.ModuleUsers, entities.ActionCreate))
	g.PUT("/users/:id", ctrl.UpdateUser, permMW.Require(entities.ModuleUsers, entities.ActionEdit))
	g.DELETE("/users/:id", ctrl.DeactivateUser, permMW.Require(entities.ModuleUsers, entities.ActionDelete))
}
