package router

import (
	"log"
	"time"

	"darely/config"
	"darely/internal/domain"
	"darely/internal/handler"
	"darely/internal/middleware"
	"darely/internal/repository"
	"darely/internal/service"
	"darely/internal/ws"
	"darely/pkg/cloudinary"
	"darely/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, provider payment.Provider) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	hub := ws.NewHub()
	roomHub := ws.NewRoomHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, fcmSvc)
	pricingSvc := service.NewPricingService(promptRepo, settingRepo)
	settlementSvc := service.NewSettlementService(service.NewDBUnitOfWork(db), roomRepo, interactionRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, interactionRepo, walletRepo)
	roomHandler := handler.NewRoomHandler(roomRepo, roomHub)
	interactionHandler := handler.NewInteractionHandler(pricingSvc, settlementSvc, interactionRepo, userRepo, notifSvc, hub, roomHub)
	queueHandler := handler.NewQueueHandler(interactionRepo, userRepo, notifSvc, hub, roomHub)
	walletHandler := handler.NewWalletHandler(cfg, walletRepo, paymentRepo, provider)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalRepo, provider)
	webhookHandler := handler.NewWebhookHandler(cfg, paymentRepo, withdrawalRepo, notifSvc)
	pricingHandler := handler.NewPricingHandler(settingRepo, promptRepo, pricingSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	uploadHandler := handler.NewUploadHandler(cloud, userRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	creatorMw := middleware.RequireRole(domain.RoleCreator, domain.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.Get)
			me.PATCH("/profile", meHandler.Update)
			me.PUT("/fcm-token", meHandler.SetFCMToken)
			me.GET("/dashboard", creatorMw, meHandler.Dashboard)
			me.POST("/avatar", uploadHandler.Avatar)
		}

		rooms := api.Group("/rooms")
		rooms.Use(authMw)
		{
			rooms.GET("", roomHandler.ListLive)
			rooms.GET("/:id", roomHandler.Get)
			rooms.POST("", creatorMw, roomHandler.Create)
			rooms.POST("/:id/end", creatorMw, roomHandler.End)
			rooms.POST("/cover", creatorMw, uploadHandler.RoomCover)
		}

		interactions := api.Group("/interactions")
		interactions.Use(authMw)
		{
			interactions.POST("", interactionHandler.Settle)
			interactions.GET("", interactionHandler.ListMine)
			interactions.GET("/status/:key", interactionHandler.Status)
		}

		queue := api.Group("/queue")
		queue.Use(authMw, creatorMw)
		{
			queue.GET("", queueHandler.List)
			queue.POST("/:id/activate", queueHandler.Activate)
			queue.POST("/:id/complete", queueHandler.Complete)
			queue.POST("/:id/reject", queueHandler.Reject)
		}

		wallet := api.Group("/wallet")
		wallet.Use(authMw)
		{
			wallet.GET("", walletHandler.Balance)
			wallet.GET("/transactions", walletHandler.Transactions)
			wallet.POST("/deposit", walletHandler.Deposit)
		}

		withdrawals := api.Group("/withdrawals")
		withdrawals.Use(authMw, creatorMw)
		{
			withdrawals.POST("", withdrawalHandler.Create)
			withdrawals.GET("", withdrawalHandler.List)
		}

		api.GET("/pricing", pricingHandler.Prices)

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.PUT("/pricing/tier", pricingHandler.SetTierPrice)
			admin.PUT("/pricing/custom-minimum", pricingHandler.SetCustomMinimum)
			admin.GET("/prompts", pricingHandler.ListPrompts)
			admin.POST("/prompts", pricingHandler.CreatePrompt)
			admin.PUT("/prompts/:id", pricingHandler.UpdatePrompt)
			admin.DELETE("/prompts/:id", pricingHandler.DeletePrompt)
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/payments", webhookHandler.DepositCallback)
			webhooks.POST("/payouts", webhookHandler.PayoutCallback)
		}
	}

	// WebSocket endpoints (token via query param; browsers cannot set headers on upgrade)
	r.GET("/ws/queue", ws.UpgradeQueueWS(&cfg.JWT, hub))
	r.GET("/ws/room", ws.UpgradeRoomWS(&cfg.JWT, roomHub))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
