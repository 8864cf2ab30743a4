package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rallyops/rally-planner/handlers"
	"github.com/rallyops/rally-planner/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	rallyHandler *handlers.RallyHandler,
	teamHandler *handlers.TeamHandler,
	assignmentHandler *handlers.AssignmentHandler,
	scheduleHandler *handlers.ScheduleHandler,
	overviewHandler *handlers.OverviewHandler,
	analysisHandler *handlers.AnalysisHandler,
	documentHandler *handlers.DocumentHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public endpoints.
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// The analysis endpoint manages its own CORS contract and never
	// requires a session.
	router.Post("/analyze-document", analysisHandler.AnalyzeHandler)
	router.Options("/analyze-document", analysisHandler.AnalyzeHandler)

	// Everything below requires a resolved identity.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))

		r.Get("/profile", authHandler.Profile)
		r.Get("/dashboard", overviewHandler.DashboardHandler)

		r.Route("/rallies", func(r chi.Router) {
			r.Get("/", rallyHandler.ListHandler)
			r.Post("/", rallyHandler.CreateHandler)

			r.Route("/{rallyID}", func(r chi.Router) {
				r.Get("/", rallyHandler.GetByIDHandler)
				r.Put("/", rallyHandler.UpdateHandler)
				r.Delete("/", rallyHandler.DeleteHandler)
				r.Get("/overview", rallyHandler.OverviewHandler)

				r.Get("/assignments", assignmentHandler.ListHandler)
				r.Post("/assignments", assignmentHandler.CreateHandler)

				r.Get("/schedule", scheduleHandler.ListHandler)
				r.Post("/schedule", scheduleHandler.CreateHandler)

				r.Post("/documents", documentHandler.UploadHandler)
				r.Delete("/documents/*", documentHandler.DeleteHandler)
			})
		})

		r.Route("/team-members", func(r chi.Router) {
			r.Get("/", teamHandler.ListHandler)
			r.Post("/", teamHandler.CreateHandler)
			r.Get("/{memberID}", teamHandler.GetByIDHandler)
			r.Put("/{memberID}", teamHandler.UpdateHandler)
			r.Delete("/{memberID}", teamHandler.DeleteHandler)
		})

		r.Delete("/assignments/{assignmentID}", assignmentHandler.DeleteHandler)
		r.Delete("/schedule-items/{itemID}", scheduleHandler.DeleteHandler)
	})
}
