package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runPermissionRouter(g *echo.Group, ctrl *controllers.PermissionController, permMW *middleware.PermissionMiddleware) {
	g.GET("/permissions", ctrl.GetCatalog, permMW.Require(entities.ModulePermissions, entities.ActionView))
	g.GET("/users/:id/permissions", ctrl.GetUserPermissions, permMW.Require(entities.ModulePermissions, entities.ActionView))
	g.POST("/users/:id/permissions", ctrl.Grant, permMW.Require(entities.ModulePermissions, entities.ActionCreate))
	g.DELETE("/users/:id/permissions/:module/:action", ctrl.Revoke, permMW.Require(entities.ModulePermissions, entities.ActionDelete))
}
