// Package server wires stores, services and handlers into the HTTP app.
// NewRouter takes pre-built dependencies so tests can run the full surface
// against in-memory stores.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datainventdev-eng/hr-management/internal/domain/audit"
	"github.com/datainventdev-eng/hr-management/internal/domain/auth"
	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/domain/leave"
	"github.com/datainventdev-eng/hr-management/internal/domain/notifications"
	"github.com/datainventdev-eng/hr-management/internal/domain/org"
	"github.com/datainventdev-eng/hr-management/internal/domain/payroll"
	"github.com/datainventdev-eng/hr-management/internal/domain/timesheet"
	"github.com/datainventdev-eng/hr-management/internal/platform/config"
	"github.com/datainventdev-eng/hr-management/internal/platform/db"
	"github.com/datainventdev-eng/hr-management/internal/platform/email"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
	audithandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/audit"
	authhandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/auth"
	leavehandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/leave"
	notificationshandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/notifications"
	orghandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/org"
	payrollhandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/payroll"
	timesheethandler "github.com/datainventdev-eng/hr-management/internal/transport/http/handlers/timesheet"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
)

// Deps carries everything the router needs. Production wiring fills it from
// Postgres stores; tests fill it from memory stores.
type Deps struct {
	Config        config.Config
	Users         auth.UserStore
	Org           *org.Service
	Leave         *leave.Service
	Timesheets    *timesheet.Service
	Payroll       *payroll.Service
	Notifications *notifications.Service
	Audit         *audit.Service
	Ready         func(ctx context.Context) error
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	runner := effects.NewRunner(deps.Notifications, deps.Audit)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(deps.Users, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		orghandler.NewHandler(deps.Org).RegisterRoutes(r)
		leavehandler.NewHandler(deps.Leave, runner).RegisterRoutes(r)
		timesheethandler.NewHandler(deps.Timesheets, runner).RegisterRoutes(r)
		payrollhandler.NewHandler(deps.Payroll, runner).RegisterRoutes(r)
		notificationshandler.NewHandler(deps.Notifications).RegisterRoutes(r)
		audithandler.NewHandler(deps.Audit).RegisterRoutes(r)
	})

	return router
}

// Run boots the production server: config, Postgres, migrations, seed,
// router, listen.
func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	gen := ids.NewUUID()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg, gen); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	deps := buildPGDeps(cfg, pool, gen)
	router := NewRouter(deps)

	log.Printf("hr-management server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func buildPGDeps(cfg config.Config, pool *pgxpool.Pool, gen ids.Generator) Deps {
	users := auth.NewPGUserStore(pool)
	orgSvc := org.NewService(org.NewPGStore(pool))

	notifySvc := notifications.NewService(notifications.NewPGStore(pool), gen).
		WithMailer(email.New(cfg), auth.EmailDirectory{Users: users})
	auditSvc := audit.NewService(audit.NewPGStore(pool), gen)

	return Deps{
		Config:        cfg,
		Users:         users,
		Org:           orgSvc,
		Leave:         leave.NewService(leave.NewPGStore(pool), orgSvc, gen),
		Timesheets:    timesheet.NewService(timesheet.NewPGStore(pool), orgSvc, gen),
		Payroll:       payroll.NewService(payroll.NewPGStore(pool), gen).WithPayslipDir(cfg.PayslipDir),
		Notifications: notifySvc,
		Audit:         auditSvc,
		Ready:         pool.Ping,
	}
}
