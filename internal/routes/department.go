package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

// Los departamentos se administran desde el módulo de usuarios.
func runDepartmentRouter(g *echo.Group, ctrl *controllers.DepartmentController, permMW *middleware.PermissionMiddleware) {
	g.GET("/departments", ctrl.GetDepartments)
	g.GET("/departments/:id", ctrl.FindDepartment)
	g.POST("/departments", ctrl.CreateDepartment, permMW.Require(entities.ModuleUsers, entities.ActionCreate))
	g.PUT("/departments/:id", ctrl.UpdateDepartment, permMW.Require(entities.ModuleUsers, entities.ActionEdit))
	g.DELETE("/departments/:id", ctrl.DeleteDepartment, permMW.Require(entities.ModuleUsers, entities.ActionDelete))
}
