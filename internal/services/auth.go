package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/config"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, userID uint64) error
	Me(ctx context.Context, userID uint64) (*dto.MeDTO, error)
}

// AuthService maneja sesiones. Redis guarda solo el contador de intentos
// fallidos y el refresh token vigente por usuario; las concesiones nunca
// pasan por el caché.
type AuthService struct {
	userRepo       repositories.UserRepositoryInterface
	permissionRepo repositories.PermissionRepositoryInterface
	cache          repositories.CacheRepositoryInterface
	jwt            service.JWTService
	authCfg        config.AuthConfig
	logger         *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwt service.JWTService,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
		cache:          cache,
		jwt:            jwt,
		authCfg:        authCfg,
		logger:         logger,
	}
}

func claveIntentos(email string) string { return fmt.Sprintf("login_attempts:%s", email) }

func claveRefresh(userID uint64) string { return fmt.Sprintf("refresh_token:%d", userID) }

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	intentos, err := s.cache.Get(ctx, claveIntentos(payload.Email))
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("Redis no disponible al leer intentos de acceso", zap.Error(err))
	}
	if intentos != "" {
		var n int
		fmt.Sscanf(intentos, "%d", &n)
		if n >= s.authCfg.MaxLoginAttempts {
			return nil, apperrors.ErrAccountLocked
		}
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registrarIntentoFallido(ctx, payload.Email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.registrarIntentoFallido(ctx, payload.Email)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	if err := s.cache.Del(ctx, claveIntentos(payload.Email)); err != nil {
		s.logger.Warn("No se pudo limpiar el contador de intentos", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwt.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generando tokens: %w", err)
	}
	if err := s.cache.Set(ctx, claveRefresh(user.ID), refreshToken, s.jwt.GetRefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("error guardando refresh token: %w", err)
	}

	s.logger.Info("Inicio de sesión", zap.Uint64("user_id", user.ID), zap.String("role", string(user.Role)))
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rota el par de tokens. El refresh token presentado debe coincidir
// con el último emitido; un token robado y ya rotado queda inservible.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwt.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	guardado, err := s.cache.Get(ctx, claveRefresh(claims.UserID))
	if err != nil || guardado != payload.RefreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	accessToken, refreshToken, err := s.jwt.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generando tokens: %w", err)
	}
	if err := s.cache.Set(ctx, claveRefresh(user.ID), refreshToken, s.jwt.GetRefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("error guardando refresh token: %w", err)
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	return s.cache.Del(ctx, claveRefresh(userID))
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.MeDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	grants, err := s.permissionRepo.GetUserGrants(ctx, userID)
	if err != nil {
		return nil, err
	}
	permisos := make([]string, 0, len(grants))
	for _, g := range grants {
		permisos = append(permisos, fmt.Sprintf("%s:%s", g.Module, g.Action))
	}

	return &dto.MeDTO{
		ID:           user.ID,
		Nombre:       user.Nombre,
		Email:        user.Email,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
		Permissions:  permisos,
	}, nil
}

func (s *AuthService) registrarIntentoFallido(ctx context.Context, email string) {
	n, err := s.cache.Incr(ctx, claveIntentos(email))
	if err != nil {
		s.logger.Warn("No se pudo registrar el intento fallido", zap.Error(err))
		return
	}
	if n == 1 {
		if _, err := s.cache.Expire(ctx, claveIntentos(email), s.authCfg.LockoutDuration); err != nil {
			s.logger.Warn("No se pudo fijar la expiración del bloqueo", zap.Error(err))
		}
	}
}
