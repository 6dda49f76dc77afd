package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/utils"
)

// PermissionChecker responde si el usuario puede ejecutar (module, action).
// La implementación consulta la base en cada verificación.
type PermissionChecker interface {
	Can(ctx context.Context, userID uint64, module entities.Module, action entities.Action) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  *zap.Logger
}

func NewPermissionMiddleware(checker PermissionChecker, logger *zap.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{checker: checker, logger: logger}
}

// Require corta la petición con 403 si el actor no tiene el permiso pedido.
// Debe montarse después de Auth.
func (m *PermissionMiddleware) Require(module entities.Module, action entities.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, err := utils.GetUserIDFromCtx(ctx)
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}

			permitido, err := m.checker.Can(ctx, userID, module, action)
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !permitido {
				m.logger.Warn("Permiso insuficiente",
					zap.Uint64("user_id", userID),
					zap.String("module", string(module)),
					zap.String("action", string(action)))
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
