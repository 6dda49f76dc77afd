package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
)

func runEquipmentRouter(g *echo.Group, ctrl *controllers.EquipmentController, permMW *middleware.PermissionMiddleware) {
	g.GET("/equipment", ctrl.GetEquipment, permMW.Require(entities.ModuleEquipment, entities.ActionView))
	g.GET("/equipment/:id", ctrl.FindEquipment, permMW.Require(entities.ModuleEquipment, entities.ActionView))
	g.POST("/equipment", ctrl.CreateEquipment, permMW.Require(entities.ModuleEquipment, entities.ActionCreate))
	g.PUT("/equipment/:id", ctrl.UpdateEquipment, permMW.Require(entities.ModuleEquipment, entities.ActionEdit))
	g.DELETE("/equipment/:id", ctrl.DeleteEquipment, permMW.Require(entities.ModuleEquipment, entities.ActionDelete))
}
