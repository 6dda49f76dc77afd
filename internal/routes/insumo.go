package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runInsumoRouter(g *echo.Group, ctrl *controllers.InsumoController, permMW *middleware.PermissionMiddleware) {
	g.GET("/insumos", ctrl.GetInsumos, permMW.Require(entities.ModuleSupplies, entities.ActionView))
	g.GET("/insumos/:id", ctrl.FindInsumo, permMW.Require(entities.ModuleSupplies, entities.ActionView))
	g.POST("/insumos", ctrl.CreateInsumo, permMW.Require(entities.ModuleSupplies, entities.ActionCreate))
	g.PUT("/insumos/:id", ctrl.UpdateInsumo, permMW.Require(entities.ModuleSupplies, entities.ActionEdit))
	g.POST("/insumos/:id/movements", ctrl.RegisterMovement, permMW.Require(entities.ModuleSupplies, entities.ActionEdit))
	g.GET("/insumos/:id/movements", ctrl.GetMovementsByInsumo, permMW.Require(entities.ModuleSupplies, entities.ActionView))
	g.GET("/movements", ctrl.GetMovements, permMW.Require(entities.ModuleSupplies, entities.ActionView))
}
