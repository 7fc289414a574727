package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentora/config"
	"rentora/cron"
	"rentora/database"
	bookingRepoPkg "rentora/database/repository/booking"
	clientRepoPkg "rentora/database/repository/client"
	messageRepoPkg "rentora/database/repository/message"
	propertyRepoPkg "rentora/database/repository/property"
	reservationRepoPkg "rentora/database/repository/reservation"
	"rentora/handlers"
	"rentora/middleware"
	"rentora/routes"
	"rentora/services/booking"
	"rentora/services/client"
	"rentora/services/dashboard"
	"rentora/services/message"
	"rentora/services/property"
	"rentora/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	messageRepo := messageRepoPkg.NewMongoMessageRepo()

	// Services.
	availabilityChecker := &booking.DefaultAvailabilityChecker{Repo: bookingRepo}
	sessionService := &booking.DefaultSessionService{
		Store:        booking.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute),
		Checker:      availabilityChecker,
		Bookings:     bookingRepo,
		Properties:   propertyRepo,
		Reservations: reservationRepo,
	}
	bookingService := &booking.DefaultService{
		Bookings:     bookingRepo,
		Clients:      clientRepo,
		Properties:   propertyRepo,
		Reservations: reservationRepo,
	}
	propertyService := &property.DefaultPropertyService{Repo: propertyRepo}
	clientService := &client.DefaultClientService{Repo: clientRepo}
	messageService := &message.DefaultMessageService{Repo: messageRepo}
	dashboardService := &dashboard.DefaultDashboardService{
		Bookings:   bookingRepo,
		Clients:    clientRepo,
		Properties: propertyRepo,
		Cache:      utils.GetCacheClient(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthClient: utils.GetFirebaseAuthClient(),
		BookingHandler: &handlers.BookingHandler{
			BookingService: bookingService,
			SessionService: sessionService,
		},
		PropertyHandler:  &handlers.PropertyHandler{PropertyService: propertyService},
		ClientHandler:    &handlers.ClientHandler{ClientService: clientService},
		MessageHandler:   &handlers.MessageHandler{MessageService: messageService},
		DashboardHandler: &handlers.DashboardHandler{DashboardService: dashboardService},
		StorageHandler:   &handlers.StorageHandler{StorageService: storageService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep that completes departed bookings.
	completionWorker := cron.StartCompletionWorker(bookingRepo)

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

	completionWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
