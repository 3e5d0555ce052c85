package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/plannerhq/planner-api/internal/adapters/httpapi"
	"github.com/plannerhq/planner-api/internal/adapters/logmail"
	memactivityrepo "github.com/plannerhq/planner-api/internal/adapters/memory/activityrepo"
	memlinkrepo "github.com/plannerhq/planner-api/internal/adapters/memory/linkrepo"
	memparticipantrepo "github.com/plannerhq/planner-api/internal/adapters/memory/participantrepo"
	memtriprepo "github.com/plannerhq/planner-api/internal/adapters/memory/triprepo"
	postgres "github.com/plannerhq/planner-api/internal/adapters/postgres"
	pgactivityrepo "github.com/plannerhq/planner-api/internal/adapters/postgres/activityrepo"
	pglinkrepo "github.com/plannerhq/planner-api/internal/adapters/postgres/linkrepo"
	pgparticipantrepo "github.com/plannerhq/planner-api/internal/adapters/postgres/participantrepo"
	pgtriprepo "github.com/plannerhq/planner-api/internal/adapters/postgres/triprepo"
	"github.com/plannerhq/planner-api/internal/adapters/smtp"
	"github.com/plannerhq/planner-api/internal/app/activities"
	"github.com/plannerhq/planner-api/internal/app/links"
	"github.com/plannerhq/planner-api/internal/app/participants"
	"github.com/plannerhq/planner-api/internal/app/trips"
	"github.com/plannerhq/planner-api/internal/platform/config"
	"github.com/plannerhq/planner-api/internal/platform/logging"
	activityrepoport "github.com/plannerhq/planner-api/internal/ports/out/activityrepo"
	linkrepoport "github.com/plannerhq/planner-api/internal/ports/out/linkrepo"
	mailerport "github.com/plannerhq/planner-api/internal/ports/out/mailer"
	participantrepoport "github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	triprepoport "github.com/plannerhq/planner-api/internal/ports/out/triprepo"
	"github.com/plannerhq/planner-api/migrations"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	var (
		tripRepo        triprepoport.Repository
		participantRepo participantrepoport.Repository
		activityRepo    activityrepoport.Repository
		linkRepo        linkrepoport.Repository
		cleanup         func()
	)

	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Error("invalid postgres config", "error", err)
			os.Exit(1)
		}
		cleanup = pool.Close

		if cfg.MigrateOnStart {
			goose.SetBaseFS(migrations.FS)
			if err := goose.SetDialect("postgres"); err != nil {
				logger.Error("goose dialect", "error", err)
				os.Exit(1)
			}
			db := stdlib.OpenDBFromPool(pool)
			if err := goose.UpContext(context.Background(), db, "."); err != nil {
				logger.Error("migrations failed", "error", err)
				os.Exit(1)
			}
			logger.Info("migrations applied")
		}

		tripRepo = pgtriprepo.NewRepo(pool)
		participantRepo = pgparticipantrepo.NewRepo(pool)
		activityRepo = pgactivityrepo.NewRepo(pool)
		linkRepo = pglinkrepo.NewRepo(pool)
	default:
		memParticipants := memparticipantrepo.NewRepo()
		tripRepo = memtriprepo.NewRepoWithParticipants(memParticipants)
		participantRepo = memParticipants
		activityRepo = memactivityrepo.NewRepo()
		linkRepo = memlinkrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	var mail mailerport.Mailer
	switch cfg.MailBackend {
	case "smtp":
		m, err := smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		if err != nil {
			logger.Error("invalid smtp config", "error", err)
			os.Exit(1)
		}
		mail = m
	default:
		mail = logmail.NewMailer(logger)
	}

	sender := mailerport.Address{Name: cfg.MailSenderName, Email: cfg.MailSenderAddress}

	tripSvc := trips.NewService(tripRepo, participantRepo, mail, trips.Config{
		WebBaseURL:  cfg.WebBaseURL,
		APIBaseURL:  cfg.APIBaseURL,
		Sender:      sender,
		MailTimeout: cfg.MailTimeout,
	})
	participantSvc := participants.NewService(tripRepo, participantRepo, mail, participants.Config{
		WebBaseURL:  cfg.WebBaseURL,
		APIBaseURL:  cfg.APIBaseURL,
		Sender:      sender,
		MailTimeout: cfg.MailTimeout,
	})
	activitySvc := activities.NewService(tripRepo, activityRepo)
	linkSvc := links.NewService(tripRepo, linkRepo)

	api := httpapi.NewServer(tripSvc, participantSvc, activitySvc, linkSvc)
	handler := httpapi.NewRouter(api, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening", "port", cfg.Port, "storage", cfg.StorageBackend, "mail", cfg.MailBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
