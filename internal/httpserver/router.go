package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"visiotech/internal/auth"
	"visiotech/internal/config"
	"visiotech/internal/httpserver/handlers"
	"visiotech/internal/models"
)

func NewRouter(db *gorm.DB, cfg *config.Config, lg *zap.SugaredLogger) http.Handler {
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", handlers.Register(db, tokens, lg))
		api.Post("/auth/login", handlers.Login(db, tokens, lg))

		// Public content reads.
		api.Get("/solutions", handlers.ListSolutions(db, lg))
		api.Get("/solutions/{id}", handlers.GetSolution(db, lg))
		api.Get("/products", handlers.ListProducts(db, lg))
		api.Get("/products/{id}", handlers.GetProduct(db, lg))
		api.Get("/case-studies", handlers.ListCaseStudies(db, lg))
		api.Get("/case-studies/{id}", handlers.GetCaseStudy(db, lg))
		api.Get("/media-assets", handlers.ListMediaAssets(db, lg))
		api.Get("/media-assets/{id}", handlers.GetMediaAsset(db, lg))

		// Lead capture works anonymously; a valid token links the submission.
		api.With(auth.OptionalAuthenticate(tokens)).Post("/demo-requests", handlers.CreateDemoRequest(db, lg))

		api.Group(func(protected chi.Router) {
			protected.Use(auth.Authenticate(tokens, lg))
			protected.Get("/auth/me", handlers.Me(db, lg))
			protected.Get("/projects", handlers.ListProjects(db, lg))
			protected.Get("/projects/{id}", handlers.GetProject(db, lg))

			protected.Group(func(admin chi.Router) {
				admin.Use(auth.RequireRole(models.RoleAdmin))
				admin.Get("/auth/users", handlers.ListUsers(db, lg))
				admin.Post("/auth/users", handlers.CreateUser(db, lg))
				admin.Get("/auth/users/{id}", handlers.GetUser(db, lg))
				admin.Put("/auth/users/{id}", handlers.UpdateUser(db, lg))
				admin.Delete("/auth/users/{id}", handlers.DeleteUser(db, lg))

				admin.Post("/solutions", handlers.CreateSolution(db, lg))
				admin.Put("/solutions/{id}", handlers.UpdateSolution(db, lg))
				admin.Delete("/solutions/{id}", handlers.DeleteSolution(db, lg))
				admin.Post("/products", handlers.CreateProduct(db, lg))
				admin.Put("/products/{id}", handlers.UpdateProduct(db, lg))
				admin.Delete("/products/{id}", handlers.DeleteProduct(db, lg))
				admin.Post("/case-studies", handlers.CreateCaseStudy(db, lg))
				admin.Put("/case-studies/{id}", handlers.UpdateCaseStudy(db, lg))
				admin.Delete("/case-studies/{id}", handlers.DeleteCaseStudy(db, lg))
				admin.Post("/media-assets", handlers.CreateMediaAsset(db, lg))
				admin.Put("/media-assets/{id}", handlers.UpdateMediaAsset(db, lg))
				admin.Delete("/media-assets/{id}", handlers.DeleteMediaAsset(db, lg))

				admin.Get("/demo-requests", handlers.ListDemoRequests(db, lg))
				admin.Get("/demo-requests/{id}", handlers.GetDemoRequest(db, lg))
				admin.Delete("/demo-requests/{id}", handlers.DeleteDemoRequest(db, lg))

				admin.Post("/projects", handlers.CreateProject(db, lg))
				admin.Put("/projects/{id}", handlers.UpdateProject(db, lg))
				admin.Delete("/projects/{id}", handlers.DeleteProject(db, lg))

				admin.Post("/upload", handlers.Upload(cfg.UploadDir, lg))
			})
		})
	})

	// Previously uploaded files are served read-only under a fixed prefix.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
