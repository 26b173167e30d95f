package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	rosterRepo "clinicbook/database/repository/roster"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	intervalStore := scheduleRepo.NewMongoRepository()
	if err := intervalStore.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create schedule indexes: %v", err)
	}
	roster := rosterRepo.NewMongoRepository()

	// Availability cache is optional; a nil redis client disables it.
	var cache *scheduling.AvailabilityCache
	if client := utils.GetCacheClient(); client != nil {
		cache = &scheduling.AvailabilityCache{
			Client: client,
			TTL:    time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
		}
	}

	schedulingService := &scheduling.DefaultService{
		Repo:   intervalStore,
		Roster: roster,
		Clock:  scheduling.SystemClock(),
		Cache:  cache,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(schedulingService),
		Booking:      handlers.NewBookingHandler(schedulingService),
		Schedule:     handlers.NewScheduleHandler(schedulingService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
