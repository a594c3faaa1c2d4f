package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/handlers"
	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/repositories"
	"kayaai/career-navigator/internal/services"
)

func main() {
	log := logging.Default

	// Load configuration
	cfg := config.Load()
	logging.SetLevel(cfg.Log.Level)
	log.Infof("✅ Config loaded successfully")

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository()
	log.Infof("✅ Session repository initialized")

	// Initialize providers
	providers := services.BuildProviders(cfg.Providers, log)
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	log.Infof("✅ Provider chain initialized: %v", names)

	// Initialize services
	orchestrator := services.NewOrchestrator(providers, log)
	extractor := services.NewDocumentExtractor()
	reports := services.NewReportBuilder()
	log.Infof("✅ Services initialized successfully")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Kaya AI Career Navigator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Providers.Timeout*time.Duration(2*len(providers)+1) + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: newErrorHandler(cfg.IsDevelopment()),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	handlers.RegisterRoutes(app.Group("/api/v1"), handlers.Dependencies{
		Sessions:     sessionRepo,
		Orchestrator: orchestrator,
		Extractor:    extractor,
		Reports:      reports,
		MaxFileSize:  cfg.Storage.MaxFileSize,
		Logger:       log,
	})
	log.Infof("✅ Handlers initialized")

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Kaya AI Career Navigator API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/catalog",
				"POST /api/v1/sessions",
				"POST /api/v1/sessions/:id/start",
				"POST /api/v1/sessions/:id/test-resume",
				"POST /api/v1/sessions/:id/input",
				"POST /api/v1/sessions/:id/analyze",
				"GET /api/v1/sessions/:id/results",
				"GET /api/v1/sessions/:id/report",
				"POST /api/v1/sessions/:id/reset",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Infof("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)
	log.Infof("📖 API Documentation: http://localhost%s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newErrorHandler hides unexpected error detail outside development.
func newErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		} else if !development {
			message = utils.StatusMessage(code)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"code":  code,
		})
	}
}
