// Package stub содержит dev-бэкенд QuickServe в памяти: тот же HTTP
// контракт, что у настоящего маркетплейса, но без базы и без внешних
// зависимостей. Используется для локальной разработки бота и в E2E тестах.
package stub

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// Server HTTP-стаб бэкенда
type Server struct {
	secret []byte
	store  *memStore
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(secret string, logger *zap.Logger) *Server {
	s := &Server{
		secret: []byte(secret),
		store:  newMemStore(),
		logger: logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(s.requestLog())

	s.engine = engine
	s.routes()
	s.seed()

	return s
}

// Handler отдаёт роутер как http.Handler (для httptest.NewServer)
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run запускает сервер на указанном адресе
func (s *Server) Run(addr string) error {
	s.logger.Info("🚀 Stub backend is up", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func (s *Server) routes() {
	s.engine.POST("/auth/signup", s.handleSignup)
	s.engine.POST("/auth/login", s.handleLogin)
	s.engine.GET("/service_categories", s.handleCategories)

	provider := s.engine.Group("/provider", s.authRequired(), s.roleRequired(model.RoleProvider))
	{
		provider.POST("/:providerId/listings", s.handleCreateListing)
		provider.GET("/:providerId/listings", s.handleProviderListings)
		// Исторический маршрут: listingId в сегменте провайдера
		provider.GET("/:providerId/listing", s.handleGetListing)
		provider.PUT("/listings/:id", s.handleUpdateListing)
		provider.DELETE("/listings/:id", s.handleDeleteListing)
		provider.GET("/availability/:id", s.handleProviderAvailability)
		provider.POST("/availability/:id", s.handleSaveAvailability)
		provider.GET("/bookings/:id", s.handleProviderBookings)
		provider.POST("/bookings/:id/:action", s.handleProviderBookingAction)
	}

	customer := s.engine.Group("/customer", s.authRequired(), s.roleRequired(model.RoleCustomer))
	{
		customer.GET("/availability/:id", s.handleCustomerAvailability)
		customer.GET("/search", s.handleSearch)
		customer.POST("/bookings/:id", s.handleCreateBooking)
		customer.GET("/bookings/:id", s.handleCustomerBookings)
		customer.POST("/bookings/:id/cancel", s.handleCustomerCancel)
		customer.POST("/reviews", s.handleCreateReview)
		customer.GET("/reviews/:id", s.handleReviewsByBooking)
	}

	user := s.engine.Group("/user", s.authRequired())
	{
		user.GET("/notifications/:id", s.handleNotifications)
		user.PUT("/notifications/read/:id", s.handleMarkNotificationRead)
		user.PUT("/:id/profile", s.handleUpdateProfile)
		user.PUT("/:id/location", s.handleUpdateLocation)
	}

	admin := s.engine.Group("/admin", s.authRequired(), s.roleRequired(model.RoleAdmin))
	{
		admin.GET("/pending/listings", s.handlePendingListings)
		admin.GET("/approved/listings", s.handleApprovedListings)
		admin.POST("/listings/:id/:action", s.handleModerateListing)
		admin.POST("/create-category", s.handleCreateCategory)
		admin.DELETE("/categories/:id", s.handleDeleteCategory)
		admin.GET("/users", s.handleUsers)
		admin.GET("/analytics/top-categories", s.handleTopCategories)
		admin.GET("/analytics/top-services", s.handleTopServices)
	}
}

// requestLog пишет каждый запрос в zap вместо стандартного gin.Logger
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// seed создаёт админа и стартовые категории, чтобы ботом можно было
// пользоваться сразу после запуска
func (s *Server) seed() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	adminID := s.store.id()
	s.store.users[adminID] = &user{
		ID:       adminID,
		Name:     "Admin",
		Email:    "admin@quickserve.local",
		Password: "admin123",
		Role:     model.RoleAdmin,
	}

	for _, name := range []string{"Cleaning", "Plumbing", "Tutoring"} {
		id := s.store.id()
		s.store.categories[id] = &model.Category{ID: id, Name: name}
	}
}
