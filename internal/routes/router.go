package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-verification-portal/internal/config"
	"asset-verification-portal/internal/delivery/http/handler"
	"asset-verification-portal/internal/events"
	"asset-verification-portal/internal/infrastructure/database/postgres"
	"asset-verification-portal/internal/logger"
	"asset-verification-portal/internal/middleware"
	"asset-verification-portal/internal/notify"
	"asset-verification-portal/internal/ocr"
	"asset-verification-portal/internal/usecase/asset"
	"asset-verification-portal/internal/usecase/campaign"
	"asset-verification-portal/internal/usecase/equipment"
	"asset-verification-portal/internal/usecase/peripheral"
	"asset-verification-portal/internal/usecase/report"
	"asset-verification-portal/internal/usecase/user"
	"asset-verification-portal/internal/usecase/verification"
)

// Services exposes the use case services that outlive request handling, so
// main can run their background jobs.
type Services struct {
	User         *user.Service
	Verification *verification.Service
}

func SetupRoutes(cfg *config.Config, db *postgres.DB, publisher *events.Publisher) (*gin.Engine, *Services) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers, CORS,
	// request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	refreshTokenRepository := postgres.NewRefreshTokenRepository(db)
	assetRepository := postgres.NewAssetRepository(db)
	peripheralRepository := postgres.NewPeripheralRepository(db)
	campaignRepository := postgres.NewCampaignRepository(db)
	recordRepository := postgres.NewVerificationRepository(db)
	tokenRepository := postgres.NewVerificationTokenRepository(db)
	equipmentRepository := postgres.NewEquipmentRepository(db)

	mailer := notify.NewMailer(cfg)
	ocrEngine := ocr.NewEngine(cfg)

	userService := user.NewService(userRepository, refreshTokenRepository, cfg.JWT)
	assetService := asset.NewService(assetRepository)
	peripheralService := peripheral.NewService(peripheralRepository)
	campaignService := campaign.NewService(
		campaignRepository,
		recordRepository,
		tokenRepository,
		userRepository,
		assetRepository,
		peripheralRepository,
		mailer,
		publisher,
		cfg.Verification,
	)
	verificationService := verification.NewService(
		recordRepository,
		tokenRepository,
		campaignRepository,
		assetRepository,
		peripheralRepository,
		ocrEngine,
		publisher,
	)
	equipmentService := equipment.NewService(equipmentRepository)
	reportService := report.NewService(
		assetRepository,
		peripheralRepository,
		campaignRepository,
		recordRepository,
		equipmentRepository,
	)

	userHandler := handler.NewUserHandler(userService)
	assetHandler := handler.NewAssetHandler(assetService)
	peripheralHandler := handler.NewPeripheralHandler(peripheralService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	reportHandler := handler.NewReportHandler(reportService)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)

		// Token-authenticated employee surface, reached from emailed links
		verificationHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)

			assetHandler.RegisterRoutes(protected)
			peripheralHandler.RegisterRoutes(protected)
			campaignHandler.RegisterRoutes(protected)
			equipmentHandler.RegisterRoutes(protected)

			managers := protected.Group("")
			managers.Use(middleware.ManagersOnly())
			{
				verificationHandler.RegisterManagerRoutes(managers)
				reportHandler.RegisterRoutes(managers)
			}

			assetManagers := protected.Group("")
			assetManagers.Use(middleware.AssetManagersOnly())
			{
				assetHandler.RegisterManagerRoutes(assetManagers)
				peripheralHandler.RegisterManagerRoutes(assetManagers)
				campaignHandler.RegisterManagerRoutes(assetManagers)
				equipmentHandler.RegisterManagerRoutes(assetManagers)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")

	return router, &Services{
		User:         userService,
		Verification: verificationService,
	}
}
