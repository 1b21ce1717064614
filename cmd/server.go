package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jobpulse/jobpulse/board/analytics/analyticsapi"
	"github.com/jobpulse/jobpulse/board/application/applicationapi"
	"github.com/jobpulse/jobpulse/board/job/jobapi"
	"github.com/jobpulse/jobpulse/board/recommendation/recommendationapi"
	"github.com/jobpulse/jobpulse/board/search/searchapi"
	"github.com/jobpulse/jobpulse/board/user/userapi"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting JobPulse API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Ensure the search index exists (best effort; search degrades
	// gracefully while Elasticsearch is down)
	if err := container.SearchIndex.EnsureIndex(context.Background()); err != nil {
		logx.Warnf("Failed to ensure search index: %v", err)
	}

	// 4. Start Resume Processing Workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.ResumeWorker.Start(workerCtx)

	// 5. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "JobPulse API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 6. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 7. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 8. Register Routes

	// Auth & Profiles: /api/auth
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)

	// Jobs: /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// Applications: /api/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// Search: /api/search
	searchapi.RegisterRoutes(app, container.SearchHandlers, container.AuthMiddleware)

	// Recommendations: /api/recommendations
	recommendationapi.RegisterRoutes(app, container.RecommendationHandlers, container.AuthMiddleware)

	// Admin Analytics: /api/admin/stats
	analyticsapi.RegisterRoutes(app, container.AnalyticsHandlers, container.AuthMiddleware)

	// 9. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Run server in a goroutine
	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	stopWorkers()
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
