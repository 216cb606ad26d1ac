package api

import (
	"github.com/gin-gonic/gin"

	"github.com/srivastan1999/elfsod-2-sub000/internal/api/handler"
	"github.com/srivastan1999/elfsod-2-sub000/internal/api/middleware"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

func SetupRouter(
	authService *service.AuthService,
	adSpaceService *service.AdSpaceService,
	categorizerService *service.CategorizerService,
	catalogService *service.CatalogService,
	quoteService *service.QuoteService,
	bookingService *service.BookingService,
	plannerService *service.PlannerService,
	authMw *middleware.AuthMiddleware,
	wsManager *handler.WebSocketManager,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Live admin-portal event feed.
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	authed := authMw.Authenticate()
	adminOnly := authMw.AuthorizeRole("admin")

	v1 := r.Group("/api/v1")
	{
		adSpaceH := handler.NewAdSpaceHandler(adSpaceService, categorizerService)
		adSpaceRoutes := v1.Group("/ad-spaces")
		{
			adSpaceRoutes.GET("", adSpaceH.List)
			adSpaceRoutes.GET("/filter", adSpaceH.Filter)
			adSpaceRoutes.GET("/:id", adSpaceH.GetByID)
			adSpaceRoutes.GET("/:id/coverage", adSpaceH.Coverage)
			adSpaceRoutes.POST("", authed, adminOnly, adSpaceH.Create)
			adSpaceRoutes.PUT("/:id", authed, adminOnly, adSpaceH.Update)
			adSpaceRoutes.DELETE("/:id", authed, adminOnly, adSpaceH.Delete)
			adSpaceRoutes.POST("/assign-categories", authed, adminOnly, adSpaceH.AssignCategories)
		}

		categoryH := handler.NewCategoryHandler(catalogService)
		categoryRoutes := v1.Group("/categories")
		{
			categoryRoutes.GET("", categoryH.List)
			categoryRoutes.GET("/:id", categoryH.GetByID)
			categoryRoutes.POST("", authed, adminOnly, categoryH.Create)
			categoryRoutes.PUT("/:id", authed, adminOnly, categoryH.Update)
			categoryRoutes.DELETE("/:id", authed, adminOnly, categoryH.Delete)
		}

		locationH := handler.NewLocationHandler(catalogService)
		locationRoutes := v1.Group("/locations")
		{
			locationRoutes.GET("", locationH.List)
			locationRoutes.GET("/:id", locationH.GetByID)
			locationRoutes.POST("", authed, adminOnly, locationH.Create)
			locationRoutes.PUT("/:id", authed, adminOnly, locationH.Update)
			locationRoutes.DELETE("/:id", authed, adminOnly, locationH.Delete)
		}

		publisherH := handler.NewPublisherHandler(catalogService)
		publisherRoutes := v1.Group("/publishers")
		{
			publisherRoutes.GET("", publisherH.List)
			publisherRoutes.GET("/:id", publisherH.GetByID)
			publisherRoutes.POST("", authed, adminOnly, publisherH.Create)
			publisherRoutes.PUT("/:id", authed, adminOnly, publisherH.Update)
			publisherRoutes.DELETE("/:id", authed, adminOnly, publisherH.Delete)
		}

		quoteH := handler.NewQuoteHandler(quoteService)
		quoteRoutes := v1.Group("/quote-requests")
		quoteRoutes.Use(authed)
		{
			quoteRoutes.POST("", quoteH.Submit)
			quoteRoutes.GET("", quoteH.List)
			quoteRoutes.GET("/:id", quoteH.GetByID)
			quoteRoutes.POST("/items/:item_id/review", adminOnly, quoteH.ReviewItem)
			quoteRoutes.DELETE("/items/:item_id", quoteH.DeleteItem)
		}

		bookingH := handler.NewBookingHandler(bookingService)
		bookingRoutes := v1.Group("/bookings")
		bookingRoutes.Use(authed)
		{
			bookingRoutes.POST("", bookingH.Create)
			bookingRoutes.GET("", bookingH.List)
			bookingRoutes.GET("/:id", bookingH.GetByID)
			bookingRoutes.PUT("/:id/status", adminOnly, bookingH.UpdateStatus)
			bookingRoutes.PUT("/:id/payment-status", adminOnly, bookingH.UpdatePaymentStatus)
		}

		plannerH := handler.NewPlannerHandler(plannerService)
		v1.POST("/ai-planner/suggest", authed, plannerH.Suggest)
	}
	return r
}
