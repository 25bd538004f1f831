// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"reservekit/config"
	"reservekit/database"
	bookingRepo "reservekit/database/repository/booking"
	customerRepo "reservekit/database/repository/customer"
	outboxRepo "reservekit/database/repository/outbox"
	providerRepo "reservekit/database/repository/provider"
	serviceRepo "reservekit/database/repository/service"
	timeslotRepo "reservekit/database/repository/timeslot"
	"reservekit/handlers"
	"reservekit/routes"
	"reservekit/services/booking"
	"reservekit/services/catalog"
	"reservekit/services/webhook"
	"reservekit/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitRateLimitCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	slotRepo := timeslotRepo.NewMongoTimeSlotRepo()
	custRepo := customerRepo.NewMongoCustomerRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	eventRepo := outboxRepo.NewMongoOutboxRepo()

	repos := []interface{ EnsureIndexes() error }{
		provRepo, svcRepo, slotRepo, custRepo, bookRepo, eventRepo,
	}
	for _, repo := range repos {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Webhook delivery pipeline.
	notifier := webhook.NewAsynqNotifier()
	worker := webhook.NewWorker(eventRepo, provRepo)
	worker.Start()
	sweeper := webhook.NewSweeper(eventRepo)
	sweeper.Start()

	// Services.
	catalogService := &catalog.DefaultCatalogService{
		Services:  svcRepo,
		TimeSlots: slotRepo,
		Cache:     utils.GetCacheClient(),
	}
	bookingService := &booking.DefaultBookingService{
		Catalog:   catalogService,
		Bookings:  bookRepo,
		Customers: custRepo,
		Notifier:  notifier,
	}

	handlerBundle := &handlers.HandlerBundle{
		Providers: provRepo,
		Catalog:   catalogService,
		Bookings:  bookingService,
	}
	routes.RegisterRoutes(router, handlerBundle, provRepo)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	sweeper.Shutdown()
	if err := notifier.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close webhook notifier: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
