package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homenest-api/config"
	"homenest-api/controllers"
	"homenest-api/dto"
	"homenest-api/events"
	"homenest-api/identity"
	"homenest-api/middleware"
	"homenest-api/repositories"
	"homenest-api/services"
	"homenest-api/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	initLogger(cfg.LogLevel)

	// The store handle is lazy: the first request to need it connects, and
	// every concurrent first caller converges on that one connection.
	store := storage.New(cfg.MongoURI, cfg.MongoDatabase)

	keys := identity.NewKeySource(cfg.IdentityCertsURL, cfg.MemcachedHost)
	verifier, err := identity.NewTokenVerifier(cfg.FirebaseServiceKey, keys)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize the token verifier")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL, "resource_events")
		if err != nil {
			logrus.WithError(err).Warn("event broker unavailable, resource-change events disabled")
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	userService := services.NewUserService(repositories.NewUserRepository(store))
	propertyService := services.NewPropertyService(repositories.NewPropertyRepository(store), publisher)
	bookingService := services.NewBookingService(repositories.NewBookingRepository(store), repositories.NewPropertyRepository(store), publisher)
	reviewService := services.NewReviewService(repositories.NewReviewRepository(store))
	contactService := services.NewContactService(repositories.NewContactRepository(store))

	router := setupRouter(verifier, userService, propertyService, bookingService, reviewService, contactService)

	logrus.WithField("port", cfg.Port).Info("HomeNest backend server is running")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func initLogger(level string) {
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	logrus.SetFormatter(formatter)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

func setupRouter(
	verifier identity.Verifier,
	userService services.UserService,
	propertyService services.PropertyService,
	bookingService services.BookingService,
	reviewService services.ReviewService,
	contactService services.ContactService,
) *gin.Engine {
	userController := controllers.NewUserController(userService)
	propertyController := controllers.NewPropertyController(propertyService)
	bookingController := controllers.NewBookingController(bookingService)
	reviewController := controllers.NewReviewController(reviewService, userService)
	contactController := controllers.NewContactController(contactService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{
			Error:   "method_not_allowed",
			Message: "Method not allowed",
		})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "Route not found",
		})
	})

	authenticated := middleware.RequireToken(verifier)
	adminOnly := middleware.RequireAdmin(userService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "HomeNest backend server is running!"})
	})

	// Users
	router.POST("/users", userController.Register)
	router.GET("/users", authenticated, adminOnly, userController.List)
	router.PATCH("/users/:email", authenticated, adminOnly, userController.Update)
	router.DELETE("/users/:email", authenticated, userController.Delete)

	// Properties
	router.GET("/properties", propertyController.List)
	router.GET("/latest-properties", propertyController.Latest)
	router.GET("/my-properties", authenticated, propertyController.MyProperties)
	router.GET("/properties/:id", authenticated, propertyController.Get)
	router.POST("/properties", authenticated, propertyController.Create)
	router.PUT("/properties/:id", authenticated, propertyController.Update)
	router.DELETE("/properties/:id", authenticated, propertyController.Delete)

	// Bookings
	router.POST("/bookings", authenticated, bookingController.Create)
	router.PATCH("/bookings/:id", authenticated, adminOnly, bookingController.Update)
	router.DELETE("/bookings/:id", authenticated, bookingController.Delete)
	router.GET("/my-bookings", authenticated, bookingController.MyBookings)
	router.GET("/all-bookings", authenticated, adminOnly, bookingController.AllBookings)

	// Reviews
	router.GET("/reviews", reviewController.List)
	router.GET("/reviews/:propertyId", reviewController.ListByProperty)
	router.GET("/my-reviews", authenticated, reviewController.MyReviews)
	router.POST("/reviews", authenticated, reviewController.Create)
	router.DELETE("/reviews/:id", authenticated, reviewController.Delete)

	// Contact
	router.POST("/contact", contactController.Create)
	router.GET("/contact", authenticated, adminOnly, contactController.List)

	return router
}
