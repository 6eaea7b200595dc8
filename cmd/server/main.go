package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/db"
	"streamgrowth_app_go/handlers"
	"streamgrowth_app_go/middleware"
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
	"streamgrowth_app_go/services/jobs"
	"streamgrowth_app_go/services/leadform"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.LeadRecord{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	manager := leadform.NewManager(leadform.Dependencies{
		Uploader:       newUploader(cfg),
		Submitter:      services.NewLeadSubmitter(cfg.APIBaseURL),
		Recorder:       services.NewLeadRecordService(db.DB, cfg),
		AutoCloseDelay: cfg.AutoCloseDelay,
		MaxStagedBytes: int64(cfg.MaxStagedMB) << 20,
		StagedFileTTL:  cfg.StagedFileTTL,
	})

	middleware.InitAssetVersions("static")

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit("12M"))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.CSRF(cfg.IsProduction()))
	e.Use(middleware.LeadSession(cfg.IsProduction()))

	// Make config and the form sessions available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			c.Set(handlers.LeadFormsKey, manager)
			return next(c)
		}
	})

	e.Static("/static", "static")
	if cfg.UploadProvider == config.UploadProviderStorage && !cfg.IsProduction() {
		// Local storage URLs are relative to the upload dir
		e.Static("/"+filepath.ToSlash(filepath.Clean(cfg.UploadDir)), cfg.UploadDir)
	}

	e.GET("/", handlers.LandingHandler)
	e.GET("/stories", handlers.StoriesHandler)
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	lead := e.Group("/lead")
	{
		lead.GET("", handlers.LeadStateHandler)
		lead.POST("/open", handlers.LeadOpenHandler, middleware.LeadFormRateLimiter.Middleware())
		lead.POST("/close", handlers.LeadCloseHandler)
		lead.POST("/field", handlers.LeadFieldHandler, middleware.LeadFormRateLimiter.Middleware())
		lead.POST("/goals/toggle", handlers.LeadToggleGoalHandler, middleware.LeadFormRateLimiter.Middleware())
		lead.POST("/advance", handlers.LeadAdvanceHandler, middleware.SubmissionRateLimiter.Middleware())
		lead.POST("/attachment", handlers.LeadAttachmentHandler, middleware.AttachmentRateLimiter.Middleware())
		lead.POST("/finalize", handlers.LeadFinalizeHandler, middleware.SubmissionRateLimiter.Middleware())
	}

	stop := make(chan struct{})
	middleware.LeadFormRateLimiter.StartSweeper(stop)
	middleware.AttachmentRateLimiter.StartSweeper(stop)
	middleware.SubmissionRateLimiter.StartSweeper(stop)

	scheduler, err := jobs.StartScheduler(db.DB, manager, cfg.SessionIdleTTL)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[INFO] Shutting down")
	close(stop)
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] Server shutdown: %v", err)
	}

	// Let in-flight submissions finish so their outcome is recorded
	done := make(chan struct{})
	go func() {
		manager.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Println("[WARNING] Gave up waiting for in-flight submissions")
	}
}

func newUploader(cfg *config.Config) services.AttachmentUploader {
	if cfg.UploadProvider == config.UploadProviderStorage {
		log.Println("[INFO] Payment confirmations go to the storage provider")
		return services.NewStorageUploader(services.NewStorageProvider(cfg), cfg.AppURL)
	}
	log.Printf("[INFO] Payment confirmations go to Cloudinary cloud %s", cfg.CloudinaryCloudName)
	return services.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)
}
