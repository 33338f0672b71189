package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/HtetLinMaung/pytrueface/internal/api/docs"
	"github.com/HtetLinMaung/pytrueface/internal/api/handler"
	"github.com/HtetLinMaung/pytrueface/internal/api/middleware"
	"github.com/HtetLinMaung/pytrueface/internal/knownset"
	"github.com/HtetLinMaung/pytrueface/internal/service"
	"github.com/HtetLinMaung/pytrueface/internal/store"
)

type Dependencies struct {
	FaceService *service.FaceService
	Store       *store.EncodingStore
	Fetcher     *knownset.Fetcher
	DB          *pgxpool.Pool
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "PyTrueFace API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(r.deps.DB, r.deps.Store)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	faceHandler := handler.NewFaceHandler(r.deps.FaceService, r.deps.Fetcher, r.logger)

	// Face routes
	r.app.Post("/addFace", faceHandler.AddFace)
	r.app.Post("/encode-face", faceHandler.EncodeFace)
	r.app.Post("/recognize-face", faceHandler.RecognizeFace)
	r.app.Post("/search-face", faceHandler.SearchFace)
	r.app.Delete("/faces/:label", faceHandler.DeleteFace)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
