package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "pet-boarding/docs"
	mem "pet-boarding/internal/adapters/storage/memory"
	pg "pet-boarding/internal/adapters/storage/postgres"
	"pet-boarding/internal/domain/costs"
	"pet-boarding/internal/domain/finance"
	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/domain/settings"
	"pet-boarding/internal/middleware"
	"pet-boarding/internal/platform/httpx"
	"pet-boarding/internal/platform/idgen"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type IDGenerator interface {
	NextID() int64
}

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger *zap.Logger
	// Zona del operador para el mes por defecto de los costos.
	Location *time.Location
	IDs      IDGenerator
}

// store es lo que comparten los dos backends.
type store interface {
	pets.Store
	Costs() costs.Repository
	Settings() settings.Repository
}

// NewRouter arma la API. Sin IDs usa un generador snowflake en el nodo 1.
func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	ids := opts.IDs
	if ids == nil {
		gen, err := idgen.New(1)
		if err != nil {
			return nil, err
		}
		ids = gen
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log.Named("http")))
	r.Use(middleware.Recover(log.Named("http")))
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(_ *http.Request, _ string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, "ok")
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var st store
	if opts.DB != nil {
		st = pg.NewStore(opts.DB, log.Named("store.postgres"))
	} else {
		st = mem.NewStore()
	}

	// Services por módulo
	petsSvc := pets.NewService(st, ids, log.Named("svc.pets"))
	incomesSvc := incomes.NewService(st.Incomes(), ids)
	costsSvc := costs.NewService(st.Costs(), ids, loc)
	settingsSvc := settings.NewService(st.Settings(), log.Named("svc.settings"))
	financeSvc := finance.NewService(st.Pets(), st.Incomes(), costsSvc, settingsSvc, log.Named("svc.finance"))

	// Rutas por módulo. capacity va antes que /{id}.
	r.Route("/api/pets", func(r chi.Router) {
		finance.RegisterCapacityRoutes(r, financeSvc, log.Named("capacity"))
		pets.RegisterRoutes(r, petsSvc, log.Named("pets"))
	})
	r.Route("/api/incomes", func(r chi.Router) {
		incomes.RegisterRoutes(r, incomesSvc, log.Named("incomes"))
	})
	r.Route("/api/costs", func(r chi.Router) {
		costs.RegisterRoutes(r, costsSvc, log.Named("costs"))
	})
	r.Route("/api/settings", func(r chi.Router) {
		settings.RegisterRoutes(r, settingsSvc, log.Named("settings"))
	})
	r.Route("/api/finance", func(r chi.Router) {
		finance.RegisterRoutes(r, financeSvc, log.Named("finance"))
	})
	r.Route("/api/reports", func(r chi.Router) {
		finance.RegisterReportRoutes(r, financeSvc, log.Named("reports"))
	})

	return r, nil
}
