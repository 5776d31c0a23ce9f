package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "crm-timeline/internal/adapters/storage/memory"
	pg "crm-timeline/internal/adapters/storage/postgres"
	"crm-timeline/internal/adapters/workspace/directory"
	"crm-timeline/internal/domain/timeline"
	"crm-timeline/internal/middleware"
	"crm-timeline/internal/platform/logger"
	"crm-timeline/internal/ports/auth"
	"crm-timeline/internal/ports/workspace"

	_ "crm-timeline/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: store en memoria pre-cargado (tests / demo).
	// Solo se usa cuando no hay DB.
	Store *mem.Store

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var readers timeline.Readers

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back to memory", logger.Fields{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		readers = timeline.Readers{
			Activities: pg.NewActivitiesRepo(db),
			Deals:      pg.NewDealsRepo(db),
			Tasks:      pg.NewTasksRepo(db),
			Contacts:   pg.NewContactsRepo(db),
			Campaigns:  pg.NewCampaignsRepo(db),
			Users:      pg.NewUsersRepo(db),
		}
	} else {
		store := opts.Store
		if store == nil {
			store = mem.NewStore()
		}
		readers = timeline.Readers{
			Activities: store.Activities(),
			Deals:      store.Deals(),
			Tasks:      store.Tasks(),
			Contacts:   store.Contacts(),
			Campaigns:  store.Campaigns(),
			Users:      store.Users(),
		}
	}

	svc := timeline.NewService(readers, log)

	timeline.RegisterRoutes(r, svc, workspaceResolverFromEnv())

	return r
}

// workspaceResolverFromEnv arma el resolver de workspaces si está
// configurado el directorio de cuentas; nil = se usa solo el workspace
// que venga en los claims.
func workspaceResolverFromEnv() workspace.Resolver {
	baseURL := os.Getenv("WORKSPACE_SVC_URL")
	if baseURL == "" {
		return nil
	}
	client, err := directory.NewClient(directory.Config{
		BaseURL: baseURL,
		APIKey:  os.Getenv("WORKSPACE_SVC_API_KEY"),
	})
	if err != nil {
		return nil
	}
	return client
}
