package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	availabilityRepoPkg "slotwise/database/repository/availability"
	bookingRepoPkg "slotwise/database/repository/booking"
	conversationRepoPkg "slotwise/database/repository/conversation"
	providerRepoPkg "slotwise/database/repository/provider"
	userRepoPkg "slotwise/database/repository/user"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/booking"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/services/provider"
	"slotwise/services/tasks"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	conversationRepo := conversationRepoPkg.NewMongoConversationRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()

	// asynq client for the reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	// services.
	emailSender := notification.NewSMTPSender(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPFrom,
	)
	notificationService, err := notification.NewDefaultNotificationService(emailSender)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	providerService := &provider.DefaultProviderService{
		Repo:         provRepo,
		Availability: availabilityRepo,
		Storage:      cloudinaryStorageService,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:      bookingRepo,
		Providers:     provRepo,
		Users:         userRepo,
		Conversations: conversationRepo,
		Availability:  availabilityRepo,
		Refunder:      payment.NewStripeRefunder(logger),
		Notifier:      notificationService,
		Reminders:     &tasks.AsynqReminderScheduler{Client: asynqClient},
		Clock:         booking.SystemClock{},
	}

	// handlers.
	providerHandler := handlers.NewProviderHandler(providerService)
	availabilityHandler := handlers.NewAvailabilityHandler(bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, bookingRepo)
	portfolioHandler := handlers.NewPortfolioHandler(providerService)
	webhookHandler := handlers.NewStripeWebhookHandler(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		RegisterProviderHandler: providerHandler.RegisterProviderHandler,
		GetProviderHandler:      providerHandler.GetProviderHandler,
		UpdateProviderHandler:   providerHandler.UpdateProviderHandler,

		GetSlotsHandler:        availabilityHandler.GetSlotsHandler,
		AddRuleHandler:         providerHandler.AddRuleHandler,
		DeleteRuleHandler:      providerHandler.DeleteRuleHandler,
		ListRulesHandler:       providerHandler.ListRulesHandler,
		AddExceptionHandler:    providerHandler.AddExceptionHandler,
		DeleteExceptionHandler: providerHandler.DeleteExceptionHandler,
		ListExceptionsHandler:  providerHandler.ListExceptionsHandler,

		ConfirmBookingHandler:       bookingHandler.ConfirmBookingHandler,
		RejectBookingHandler:        bookingHandler.RejectBookingHandler,
		CancelBookingHandler:        bookingHandler.CancelBookingHandler,
		GetBookingHandler:           bookingHandler.GetBookingHandler,
		ListProviderBookingsHandler: bookingHandler.ListProviderBookingsHandler,
		ListMyBookingsHandler:       bookingHandler.ListMyBookingsHandler,

		UploadPortfolioImageHandler: portfolioHandler.UploadPortfolioImageHandler,
		DeletePortfolioImageHandler: portfolioHandler.DeletePortfolioImageHandler,

		StripeWebhookHandler: webhookHandler.HandleWebhook,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker.
	cron.InitReminderWorker(cron.ReminderWorkerDeps{
		Bookings:  bookingRepo,
		Providers: provRepo,
		Users:     userRepo,
		Notifier:  notificationService,
	})

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
