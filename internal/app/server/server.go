package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"workdesk/internal/domain/attachments"
	"workdesk/internal/domain/audit"
	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/notifications"
	"workdesk/internal/domain/org"
	"workdesk/internal/domain/performance"
	"workdesk/internal/domain/report"
	"workdesk/internal/domain/tasks"
	"workdesk/internal/platform/config"
	"workdesk/internal/platform/db"
	"workdesk/internal/platform/email"
	"workdesk/internal/platform/jobs"
	"workdesk/internal/platform/metrics"
	attachmentshandler "workdesk/internal/transport/http/handlers/attachments"
	audithandler "workdesk/internal/transport/http/handlers/audit"
	authhandler "workdesk/internal/transport/http/handlers/auth"
	metricshandler "workdesk/internal/transport/http/handlers/metrics"
	notificationshandler "workdesk/internal/transport/http/handlers/notifications"
	orghandler "workdesk/internal/transport/http/handlers/org"
	performancehandler "workdesk/internal/transport/http/handlers/performance"
	reportshandler "workdesk/internal/transport/http/handlers/reports"
	taskshandler "workdesk/internal/transport/http/handlers/tasks"
	"workdesk/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	orgStore := org.NewStore(pool)
	taskStore := tasks.NewStore(pool)
	performanceStore := performance.NewStore(pool)
	notificationStore := notifications.NewStore(pool)
	attachmentService := attachments.NewService(pool, cfg.AttachmentDir)
	auditService := audit.New(pool)
	reportService := report.NewService(orgStore, performanceStore)
	notifier := notifications.New(notificationStore, email.New(cfg), cfg.EmailEnabled, cfg.EmailFrom)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	runner := jobs.NewRunner(pool)
	runner.Start(ctx)
	runner.Every(ctx, cfg.CleanupInterval, jobs.Job{
		Name: "notification-cleanup",
		Run: func(jobCtx context.Context) error {
			cutoff := time.Now().Add(-cfg.NotificationTTL)
			deleted, err := notificationStore.DeleteReadBefore(jobCtx, cutoff)
			if err != nil {
				return err
			}
			if deleted > 0 {
				log.Printf("notification cleanup removed %d rows", deleted)
			}
			return nil
		},
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, cfg.MaxUploadBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).
			Group(func(r chi.Router) {
				authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
			})

		orghandler.NewHandler(orgStore, authStore).RegisterRoutes(r)
		taskshandler.NewHandler(taskStore, authStore, notifier).RegisterRoutes(r)
		attachmentshandler.NewHandler(attachmentService, authStore, cfg.MaxUploadBytes).RegisterRoutes(r)
		notificationshandler.NewHandler(notifier).RegisterRoutes(r)
		performancehandler.NewHandler(performanceStore, authStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, orgStore, authStore, auditService, collector).RegisterRoutes(r)
		audithandler.NewHandler(auditService, authStore).RegisterRoutes(r)
		if collector != nil {
			metricshandler.NewHandler(collector, authStore).RegisterRoutes(r)
		}
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("workdesk server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built frontend; unknown paths fall through to
// index.html so client-side routing works on refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
