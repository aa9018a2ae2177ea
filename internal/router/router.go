package router

import (
	"net/http"
	"strings"

	mem "pet-adoption/internal/adapters/storage/memory"
	_ "pet-adoption/internal/docs"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, in-memory (modo dev).
	PetRepo pets.Repository

	// Opcional: si no viene, Nop.
	Logger logger.Logger

	// RateLimitRPS <= 0 desactiva el limitador.
	RateLimitRPS   int
	RateLimitBurst int

	// Orígenes permitidos para /api (coma-separados). Vacío => "*".
	CORSAllowedOrigins string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	petRepo := opts.PetRepo
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	petsSvc := pets.NewService(petRepo)

	// API JSON: solo lectura, con CORS y sin CSRF.
	r.Route("/api", func(ar chi.Router) {
		ar.Use(newCORS(opts.CORSAllowedOrigins).Handler)
		pets.RegisterAPIRoutes(ar, petsSvc)
	})

	// Páginas HTML con formularios protegidos por CSRF.
	r.Group(func(hr chi.Router) {
		hr.Use(middleware.CSRF)
		pets.RegisterRoutes(hr, petsSvc)
	})

	return r
}

func newCORS(allowed string) *cors.Cors {
	origins := make([]string, 0)
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:         86400,
	})
}
