package routes

import (
	"net/http"
	"time"

	"rentora/handlers"
	"rentora/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the marketing-site endpoints. No auth.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/properties", hb.PropertyHandler.ListPropertiesHandler)
		api.GET("/properties/:id", hb.PropertyHandler.GetPropertyHandler)
		api.POST("/messages", hb.MessageHandler.SubmitMessageHandler)
	}
}

// RegisterAdminRoutes registers the back-office endpoints behind Firebase
// auth. Every handler in this group can rely on a verified caller identity.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.FirebaseAuthAdminMiddleware(hb.AuthClient))
	{
		admin.GET("/dashboard", hb.DashboardHandler.GetStatsHandler)

		// Properties.
		admin.POST("/properties", hb.PropertyHandler.CreatePropertyHandler)
		admin.PUT("/properties/:id", hb.PropertyHandler.UpdatePropertyHandler)
		admin.DELETE("/properties/:id", hb.PropertyHandler.DeletePropertyHandler)
		admin.GET("/properties/:id/bookings", hb.BookingHandler.ListPropertyBookingsHandler)

		// Clients.
		admin.GET("/clients", hb.ClientHandler.ListClientsHandler)
		admin.GET("/clients/:id", hb.ClientHandler.GetClientHandler)
		admin.POST("/clients", hb.ClientHandler.CreateClientHandler)
		admin.PUT("/clients/:id", hb.ClientHandler.UpdateClientHandler)
		admin.DELETE("/clients/:id", hb.ClientHandler.DeleteClientHandler)
		admin.GET("/clients/:id/bookings", hb.BookingHandler.ListClientBookingsHandler)

		// Bookings. Static segments before the id, so the session routes can
		// live under the same prefix.
		admin.GET("/bookings", hb.BookingHandler.ListBookingsHandler)
		admin.GET("/bookings/range", hb.BookingHandler.ListBookingsByRangeHandler)
		admin.GET("/bookings/id/:id", hb.BookingHandler.GetBookingHandler)
		admin.POST("/bookings/cancel/:id", hb.BookingHandler.CancelBookingHandler)
		admin.DELETE("/bookings/delete/:id", hb.BookingHandler.DeleteBookingHandler)

		// Booking edit sessions.
		admin.POST("/bookings/sessions", hb.BookingHandler.OpenSessionHandler)
		admin.PUT("/bookings/sessions/:sessionID", hb.BookingHandler.UpdateSessionHandler)
		admin.POST("/bookings/sessions/:sessionID/commit", hb.BookingHandler.CommitSessionHandler)
		admin.DELETE("/bookings/sessions/:sessionID", hb.BookingHandler.AbortSessionHandler)

		// Messages.
		admin.GET("/messages", hb.MessageHandler.ListMessagesHandler)
		admin.POST("/messages/:id/read", hb.MessageHandler.MarkMessageReadHandler)
		admin.DELETE("/messages/:id", hb.MessageHandler.DeleteMessageHandler)

		// Storage.
		admin.POST("/storage/:folder", hb.StorageHandler.UploadImageHandler)
		admin.DELETE("/storage", hb.StorageHandler.DeleteImageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
