package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/services"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/utils"
)

type InsumoController struct {
	insumoService services.InsumoServiceInterface
	logger        *zap.Logger
}

func NewInsumoController(insumoService services.InsumoServiceInterface, logger *zap.Logger) *InsumoController {
	return &InsumoController{insumoService: insumoService, logger: logger}
}

func (c *InsumoController) GetInsumos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	insumos, total, err := c.insumoService.GetInsumos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, insumos, "Insumos obtenidos", http.StatusOK, total)
}

func (c *InsumoController) FindInsumo(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Formato de ID no válido"), c.logger)
	}
	insumo, err := c.insumoService.GetInsumoByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, insumo, "Insumo encontrado", http.StatusOK)
}

func (c *InsumoController) CreateInsumo(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateInsumoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición no válido"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	insumo, err := c.insumoService.CreateInsumo(ctx.Request().Context(), actorID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, insumo, "Insumo registrado correctamente", http.StatusCreated)
}

func (c *InsumoController) UpdateInsumo(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Formato de ID no válido"), c.logger)
	}

	var payload dto.UpdateInsumoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición no válido"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	insumo, err := c.insumoService.UpdateInsumo(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, insumo, "Insumo actualizado", http.StatusOK)
}

// RegisterMovement registra una entrada o salida manual del almacén.
func (c *InsumoController) RegisterMovement(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Formato de ID no válido"), c.logger)
	}

	var payload dto.CreateMovementDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición no válido"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	insumo, err := c.insumoService.RegisterMovement(ctx.Request().Context(), actorID, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, insumo, "Movimiento registrado", http.StatusCreated)
}

func (c *InsumoController) GetMovements(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	movimientos, total, err := c.insumoService.GetMovements(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, movimientos, "Movimientos obtenidos", http.StatusOK, total)
}

func (c *InsumoController) GetMovementsByInsumo(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Formato de ID no válido"), c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	movimientos, total, err := c.insumoService.GetMovementsByInsumo(ctx.Request().Context(), id, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, movimientos, "Movimientos del insumo obtenidos", http.StatusOK, total)
}
