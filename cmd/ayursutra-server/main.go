package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayursutra/ayursutra/internal/advisory"
	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/config"
	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/events"
	"github.com/ayursutra/ayursutra/internal/handler/v1"
	"github.com/ayursutra/ayursutra/internal/notification"
	"github.com/ayursutra/ayursutra/internal/repository/memory"
	"github.com/ayursutra/ayursutra/internal/repository/postgres"
	"github.com/ayursutra/ayursutra/internal/service"
	"github.com/ayursutra/ayursutra/pkg/auth"
	"github.com/ayursutra/ayursutra/pkg/database"
	"github.com/ayursutra/ayursutra/pkg/logger"
	"github.com/ayursutra/ayursutra/pkg/metrics"
	"github.com/ayursutra/ayursutra/pkg/tracer"
)

type repositories struct {
	users     service.UserRepository
	patients  patient.Repository
	therapies therapy.Repository
	feedback  feedback.Repository
	profiles  profile.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	collector := metrics.NewCollector("ayursutra")

	repos, err := buildRepositories(cfg, collector, log)
	if err != nil {
		return err
	}

	store := cache.New(cache.WithCounters(
		collector.CacheHitsTotal.Inc,
		collector.CacheMissesTotal.Inc,
	))
	bus := events.NewBus(log)
	hub := notification.NewHub(bus, log, notification.WithObserver(func(typ string) {
		collector.NotificationsTotal.WithLabelValues(typ).Inc()
	}))

	jwtManager := auth.NewJWTManager(cfg.JWT)

	advisorySvc := advisory.New(
		advisory.NewGeminiClient(cfg.AI),
		cfg.AI.Available(),
		log,
		advisory.WithObserver(collector.ObserveAdvisory),
	)

	handlers := v1.Handlers{
		Auth: v1.NewAuthHandler(service.NewAuthService(repos.users, repos.profiles, jwtManager, log)),
		Patient: v1.NewPatientHandler(service.NewPatientService(repos.patients, store, bus, log,
			service.WithPatientCreatedObserver(collector.PatientsCreatedTotal.Inc))),
		Therapy: v1.NewTherapyHandler(service.NewTherapyService(repos.therapies, repos.patients, store, bus, log,
			service.WithTherapyCreatedObserver(func(status string) {
				collector.TherapiesTotal.WithLabelValues(status).Inc()
			}))),
		Feedback: v1.NewFeedbackHandler(service.NewFeedbackService(repos.feedback, repos.therapies, store, bus, log,
			service.WithFeedbackSubmittedObserver(func(rating int) {
				collector.FeedbackTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
			}))),
		Profile:      v1.NewProfileHandler(service.NewProfileService(repos.profiles, store, bus, log)),
		Advisory:     v1.NewAdvisoryHandler(advisorySvc),
		Notification: v1.NewNotificationHandler(hub),
	}

	router := v1.NewRouter(cfg, jwtManager, collector, log, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("address", cfg.Server.Address()),
			zap.String("store_driver", cfg.Store.Driver),
			zap.Bool("advisory_available", cfg.AI.Available()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

func buildRepositories(cfg *config.Config, collector *metrics.Collector, log *zap.Logger) (*repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, log); err != nil {
			return nil, err
		}
		if err := database.MonitorConnections(db, 15*time.Second, func(open int) {
			collector.DBConnections.Set(float64(open))
		}); err != nil {
			return nil, err
		}
		return &repositories{
			users:     postgres.NewUserRepository(db),
			patients:  postgres.NewPatientRepository(db),
			therapies: postgres.NewTherapyRepository(db),
			feedback:  postgres.NewFeedbackRepository(db),
			profiles:  postgres.NewProfileRepository(db),
		}, nil

	default:
		store := memory.NewStore()
		if cfg.Store.SeedDemo {
			hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			if err := store.Seed(context.Background(), string(hash)); err != nil {
				return nil, err
			}
			log.Info("seeded demo data", zap.String("email", "demo@ayursutra.io"))
		}
		return &repositories{
			users:     store.Users(),
			patients:  store.Patients(),
			therapies: store.Therapies(),
			feedback:  store.Feedback(),
			profiles:  store.Profiles(),
		}, nil
	}
}
