package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/cpeacock1649-gif/layer-builder/internal/handler"
	"github.com/cpeacock1649-gif/layer-builder/internal/middleware"
	"github.com/cpeacock1649-gif/layer-builder/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	accountH *handler.AccountHandler,
	programH *handler.ProgramHandler,
	carrierH *handler.CarrierHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)
	auth.POST("/register", authH.Register)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountH.Create)
	accounts.GET("", accountH.List)
	accounts.GET("/:id", accountH.GetByID)
	accounts.PUT("/:id", accountH.Rename)
	accounts.DELETE("/:id", accountH.Delete)
	accounts.POST("/:id/clone", accountH.Clone)

	// Program routes (nested under the owning account)
	accounts.GET("/:id/program", programH.Get)
	accounts.PUT("/:id/program", programH.Save)
	accounts.DELETE("/:id/program", programH.Clear)
	accounts.POST("/:id/import/spreadsheets", programH.ImportSpreadsheets)
	accounts.POST("/:id/import/pdfs", programH.ImportPDFs)
	accounts.GET("/:id/files", programH.ListFiles)
	accounts.GET("/:id/export/csv", programH.ExportCSV)
	accounts.GET("/:id/export/xlsx", programH.ExportXLSX)

	// Carrier reference list
	carriers := protected.Group("/carriers")
	carriers.POST("", carrierH.Add)
	carriers.GET("", carrierH.List)
	carriers.DELETE("/:id", carrierH.Delete)

	return r
}
