package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jlane/prodesc/internal/api/handler"
	"github.com/jlane/prodesc/internal/api/middleware"
	"github.com/jlane/prodesc/internal/config"
	"github.com/jlane/prodesc/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	generationService *service.GenerationService,
	descriptionService *service.DescriptionService,
	resolver *service.ProductResolver,
	cfg *config.Config,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Non-POST requests on the proxy endpoints get an explicit 405 instead of
	// gin's default 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	healthHandler := handler.NewHealthHandler("prodesc")
	generateHandler := handler.NewGenerateHandler(generationService)
	descriptionHandler := handler.NewDescriptionHandler(descriptionService)
	productHandler := handler.NewProductHandler(resolver)

	r.GET("/health", healthHandler.Health)
	r.GET("/products", productHandler.List)

	r.POST("/generate", generateHandler.Generate)
	r.POST("/generate-description", generateHandler.GenerateForProduct)
	r.POST("/save-description", descriptionHandler.Save)

	return r
}
