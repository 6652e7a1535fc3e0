package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/mind-engage/lessonhub/internal/api/http"
	"github.com/mind-engage/lessonhub/internal/assessment"
	auth "github.com/mind-engage/lessonhub/internal/auth/middleware"
	"github.com/mind-engage/lessonhub/internal/config"
	"github.com/mind-engage/lessonhub/internal/course"
	"github.com/mind-engage/lessonhub/internal/db"
	"github.com/mind-engage/lessonhub/internal/enrollment"
	"github.com/mind-engage/lessonhub/internal/grading"
	"github.com/mind-engage/lessonhub/internal/logging"
	syncx "github.com/mind-engage/lessonhub/internal/sync"
	"github.com/mind-engage/lessonhub/internal/user"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.Logging)

	policy, err := grading.ParseEmptyKeyPolicy(cfg.EmptyKeyPolicy)
	if err != nil {
		logger.Error("bad config", "err", err)
		os.Exit(1)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		logger.Error("db open failed", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	defer dbh.Close()

	// --- Stores & services ---
	courses := course.NewSQLStore(dbh)
	assessments := assessment.NewSQLStore(dbh)
	events := syncx.NewEventRepo(dbh, cfg.SiteID)
	deps := api.Deps{
		Auth:        auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL),
		Users:       user.NewService(user.NewSQLStore(dbh), user.WithLogger(logger)),
		Courses:     courses,
		Assessments: assessments,
		Grading: grading.NewService(assessments, grading.NewSQLStore(dbh), courses,
			grading.WithLogger(logger),
			grading.WithEmptyKeyPolicy(policy),
			grading.WithEvents(events),
		),
		Enrollments: enrollment.NewService(enrollment.NewSQLStore(dbh), courses),
		Events:      events,
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) { api.MountAPI(ar, deps) })

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), cfg.DBTimeout)
		defer cancel()
		if err := dbh.PingContext(ctx); err != nil {
			logging.FromContext(r.Context()).Warn("not ready", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop, done := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer done()
	go func() {
		<-stop.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}()

	logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", cfg.DBDriver, "site", cfg.SiteID)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
