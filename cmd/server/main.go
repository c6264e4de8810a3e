package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "github.com/cpeacock1649-gif/layer-builder/docs"
	"github.com/cpeacock1649-gif/layer-builder/internal/config"
	"github.com/cpeacock1649-gif/layer-builder/internal/handler"
	"github.com/cpeacock1649-gif/layer-builder/internal/pdftext"
	"github.com/cpeacock1649-gif/layer-builder/internal/repository/postgres"
	"github.com/cpeacock1649-gif/layer-builder/internal/router"
	"github.com/cpeacock1649-gif/layer-builder/internal/service"
	s3storage "github.com/cpeacock1649-gif/layer-builder/internal/storage/s3"
	progvalidator "github.com/cpeacock1649-gif/layer-builder/internal/validator/program"
)

// @title Layer Builder API
// @version 1.0
// @description Insurance program document ingestion and reconciliation service.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	accountRepo := postgres.NewAccountRepo(db)
	programRepo := postgres.NewProgramRepo(db)
	carrierRepo := postgres.NewCarrierRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	accountSvc := service.NewAccountService(accountRepo, programRepo)
	carrierSvc := service.NewCarrierService(carrierRepo)
	programSvc := service.NewProgramService(
		accountRepo, programRepo, fileRepo, s3Client, pdftext.New(),
		progvalidator.DefaultRegistry(), &cfg.S3, &cfg.Import,
	)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	programH := handler.NewProgramHandler(programSvc)
	carrierH := handler.NewCarrierHandler(carrierSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, accountH, programH, carrierH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
