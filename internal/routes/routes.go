package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/authz"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/controllers"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/repositories"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/services"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/config"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/eventbus"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/middleware"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/service"
)

// InitRouter arma el árbol completo: repositorios, servicios, controladores y
// rutas, en ese orden.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	bus := eventbus.New(logger)
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- Repositorios ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	permissionRepo := repositories.NewPermissionRepository(dbConn, logger)
	ticketRepo := repositories.NewTicketRepository(dbConn, logger)
	deletedTicketRepo := repositories.NewDeletedTicketRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	departmentRepo := repositories.NewDepartmentRepository(dbConn)
	insumoRepo := repositories.NewInsumoRepository(dbConn, logger)
	movementRepo := repositories.NewMovementRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn)

	// --- Servicios ---
	evaluator := authz.NewEvaluator()
	authorizationService := services.NewAuthorizationService(userRepo, permissionRepo, evaluator, logger)
	authService := services.NewAuthService(userRepo, permissionRepo, cacheRepo, jwtSvc, cfg.Auth, logger)
	userService := services.NewUserService(userRepo, permissionRepo, departmentRepo, txManager, logger)
	permissionService := services.NewPermissionService(permissionRepo, userRepo, txManager, logger)
	ticketService := services.NewTicketService(ticketRepo, deletedTicketRepo, userRepo, insumoRepo, movementRepo, txManager, bus, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, userRepo, departmentRepo, logger)
	departmentService := services.NewDepartmentService(departmentRepo, logger)
	insumoService := services.NewInsumoService(insumoRepo, movementRepo, txManager, bus, logger)
	reportService := services.NewReportService(reportRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, logger)
	notificationService.RegisterListeners(bus)

	// --- Middleware ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	permMW := middleware.NewPermissionMiddleware(authorizationService, logger)
	secure := api.Group("", authMW.Auth)

	// --- Controladores y rutas ---
	runAuthRouter(api, secure, controllers.NewAuthController(authService, logger))
	runUserRouter(secure, controllers.NewUserController(userService, logger), permMW)
	runPermissionRouter(secure, controllers.NewPermissionController(permissionService, logger), permMW)
	runTicketRouter(secure, controllers.NewTicketController(ticketService, logger), permMW)
	runEquipmentRouter(secure, controllers.NewEquipmentController(equipmentService, logger), permMW)
	runDepartmentRouter(secure, controllers.NewDepartmentController(departmentService, logger), permMW)
	runInsumoRouter(secure, controllers.NewInsumoController(insumoService, logger), permMW)
	runReportRouter(secure, controllers.NewReportController(reportService, logger), permMW)
	runDashboardRouter(secure, controllers.NewDashboardController(dashboardService, logger), permMW)
	runNotificationRouter(secure, controllers.NewNotificationController(notificationService, logger))

	logger.Info("Rutas registradas")
}
