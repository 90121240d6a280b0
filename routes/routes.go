package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/retrogaming-api/docs"
	"github.com/Dosada05/retrogaming-api/handlers"
	"github.com/Dosada05/retrogaming-api/middleware"
	"github.com/Dosada05/retrogaming-api/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Development включает JSON-страницы 404/405.
	Development bool
}

func SetupRoutes(
	router *chi.Mux,
	opts Options,
	leaderboardHandler *handlers.LeaderboardHandler,
	docsHandler *handlers.DocsHandler,
	healthHandler *handlers.HealthHandler,
) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.RequestLogger(&chiMiddleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.GetHead)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.HeaderSupportedVersions},
		MaxAge:         300,
	}))

	if opts.Development {
		router.NotFound(handlers.NotFoundResponse(logger))
		router.MethodNotAllowed(handlers.MethodNotAllowedResponse(logger))
	}

	router.Get("/healthz", healthHandler.Check)

	// Версионированное API: /api/v1.0/..., /api/v2/..., без версии = 1.0
	api := func(r chi.Router) {
		r.Use(chiMiddleware.URLFormat)
		r.Use(middleware.APIVersion)

		r.With(middleware.Negotiate).Get("/leaderboard", leaderboardHandler.GetLeaderboard)
		r.With(middleware.Negotiate).Get("/leaderboard/{"+middleware.FormatURLParam+"}", leaderboardHandler.GetLeaderboard)
	}
	router.Route("/api/v{"+middleware.VersionURLParam+"}", api)
	router.Route("/api", api)

	// OpenAPI
	for _, v := range models.SupportedAPIVersions {
		router.Get(docs.Path(v), docsHandler.Document(v))
	}
	router.Get("/openapi", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/openapi/index.html", http.StatusMovedPermanently)
	})
	swaggerUI := httpSwagger.Handler(
		httpSwagger.URL(docs.Path(models.APIVersion2)),
		httpSwagger.DocExpansion("list"),
	)
	router.Get("/openapi/*", docsHandler.UI(swaggerUI, router.NotFoundHandler()))
}
