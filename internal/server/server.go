package server

import (
	"ai-assistant-client/internal/bootstrap"
	"ai-assistant-client/internal/config"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.StubContainer
	logger    logger.ILogger
}

func New(cfg *config.Config, container *bootstrap.StubContainer, log logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		ErrorHandler:          serverutils.NewErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Stub.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
		logger:    log,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info("SERVER", "Stub API listening", map[string]interface{}{
		"url": "http://localhost:" + s.cfg.Stub.Port,
	})
	return s.app.Listen(":" + s.cfg.Stub.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.StubContainer) {
	app.Get("/api/health", c.AssistantController.Health)

	api := app.Group("/api")
	if cfg.Stub.JWTSecret != "" {
		api.Use(serverutils.NewJwtMiddleware(cfg.Stub.JWTSecret))
	}

	c.AssistantController.RegisterRoutes(api)
	c.NoteController.RegisterRoutes(api)
	c.ReminderController.RegisterRoutes(api)
}
