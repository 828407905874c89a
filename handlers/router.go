package handlers

import (
	"github.com/Imdachu/imf-gadget/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route. Init must be called first.
func NewRouter(corsOrigins []string) *gin.Engine {
	router := gin.Default()
	router.Use(metrics.Middleware())

	// CORS middleware
	config := cors.DefaultConfig()
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = corsOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(config))

	router.GET("/", Root)
	router.GET("/health", Health)
	router.GET("/metrics", metrics.Handler())
	router.GET("/docs/openapi.yaml", GetOpenAPISpec)

	router.POST("/register", Register)
	router.POST("/login", Login)

	// Every gadget route requires a bearer token
	gadgetRoutes := router.Group("/gadgets", AuthMiddleware())
	{
		gadgetRoutes.GET("", GetGadgets)
		gadgetRoutes.POST("", CreateGadget)
		gadgetRoutes.PATCH("/:id", UpdateGadget)
		gadgetRoutes.DELETE("/:id", DecommissionGadget)
		gadgetRoutes.POST("/:id/self-destruct", SelfDestructGadget)
	}

	router.GET("/events/stats", AuthMiddleware(), GetEventStats)
	router.GET("/ws/gadgets", AuthMiddleware(), HandleGadgetEventsWebSocket)

	return router
}
