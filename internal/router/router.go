package router

import (
	"database/sql"
	"net/http"

	mem "dogwalks/internal/adapters/storage/memory"
	pg "dogwalks/internal/adapters/storage/postgres"
	"dogwalks/internal/config"
	"dogwalks/internal/domain/dogs"
	"dogwalks/internal/domain/matching"
	"dogwalks/internal/domain/ratings"
	"dogwalks/internal/domain/users"
	"dogwalks/internal/domain/walks"
	"dogwalks/internal/middleware"
	"dogwalks/internal/platform/logger"
	"dogwalks/internal/platform/metrics"
	"dogwalks/internal/ports/auth"

	_ "dogwalks/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
	Cfg    config.Config
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	reg := prometheus.NewRegistry()
	mc := metrics.NewCollector(reg)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.HTTPMetrics(mc))

	if opts.Cfg.RateLimitPerMinute > 0 {
		rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerMinute: opts.Cfg.RateLimitPerMinute,
			Burst:             opts.Cfg.RateLimitBurst,
		})
		r.Use(rl.Middleware())
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		usersRepo    users.Repository
		dogsRepo     dogs.Repository
		walksRepo    walks.Repository
		matchingRepo matching.Repository
		ratingsRepo  ratings.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		dogsRepo = pg.NewDogsRepo(opts.DB)
		walksRepo = pg.NewWalksRepo(opts.DB)
		matchingRepo = pg.NewMatchingRepo(opts.DB)
		ratingsRepo = pg.NewRatingsRepo(opts.DB)
	} else {
		store := mem.NewStore()
		usersRepo = mem.NewUsersRepo(store)
		dogsRepo = mem.NewDogsRepo(store)
		walksRepo = mem.NewWalksRepo(store)
		matchingRepo = mem.NewMatchingRepo(store)
		ratingsRepo = mem.NewRatingsRepo(store)
	}

	// Services por módulo. Las dependencias cruzadas van por interfaces
	// chicas (RoleResolver, OwnerResolver, etc.) para no acoplar paquetes.
	usersSvc := users.NewService(usersRepo)
	dogsSvc := dogs.NewService(dogsRepo, usersSvc)
	walksSvc := walks.NewService(walksRepo, dogsSvc)
	matchingSvc := matching.NewService(matchingRepo, walksSvc, dogsSvc)
	ratingsSvc := ratings.NewService(ratingsRepo, walksSvc, dogsSvc, matchingSvc, usersSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	dogs.RegisterRoutes(r, dogsSvc)
	walks.RegisterRoutes(r, walksSvc, mc)
	matching.RegisterRoutes(r, matchingSvc, mc)
	ratings.RegisterRoutes(r, ratingsSvc, mc)

	return r
}
