package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coffeemate/random-coffee-backend/api/routes"
	"github.com/coffeemate/random-coffee-backend/internal/config"
	"github.com/coffeemate/random-coffee-backend/internal/handlers"
	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	mongorepo "github.com/coffeemate/random-coffee-backend/internal/repositories/mongodb"
	"github.com/coffeemate/random-coffee-backend/internal/services"
	"github.com/coffeemate/random-coffee-backend/pkg/messenger"
	"github.com/coffeemate/random-coffee-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; in production everything comes from real env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	participantRepo := mongorepo.NewParticipantRepository(db)
	cycleRepo := mongorepo.NewCycleRepository(db)
	drawRepo := mongorepo.NewDrawRepository(db)
	pairRepo := mongorepo.NewPairRepository(db)
	feedbackRepo := mongorepo.NewFeedbackRepository(db)
	settingsRepo := mongorepo.NewDrawSettingsRepository(db, cfg.Draw.CadenceDays)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)

	if err := seedAdminUser(context.Background(), adminUserRepo); err != nil {
		slog.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	// Messenger client
	var msgr messenger.Client
	if cfg.Messenger.MockMessenger {
		slog.Info("using mock messenger client")
		msgr = messenger.NewMockClient("coffee")
	} else {
		msgr = messenger.NewBotClient(cfg.Messenger.BaseURL, cfg.Messenger.BotToken)
	}

	// Services
	rosterService := services.NewRosterService(participantRepo, pairRepo, msgr, cfg.Messenger.GroupID)
	cycleService := services.NewCycleService(cycleRepo, pairRepo, cfg.Draw.CycleThreshold)
	notificationService := services.NewNotificationService(msgr)
	drawService := services.NewDrawService(drawRepo, pairRepo, cycleRepo, settingsRepo, rosterService, cycleService, notificationService)
	participantService := services.NewParticipantService(participantRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, drawRepo, pairRepo, participantRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	authService := services.NewAuthService(adminUserRepo, cfg)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		DrawHandler:        handlers.NewDrawHandler(drawService),
		FeedbackHandler:    handlers.NewFeedbackHandler(feedbackService),
		SettingsHandler:    handlers.NewSettingsHandler(settingsService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	// Draw scheduler runs for the lifetime of the process
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	scheduler := services.NewScheduler(drawService, drawRepo, settingsRepo, cfg.Draw.TickInterval)
	go scheduler.Run(schedCtx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

// setupLogger configures the default slog logger
func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// seedAdminUser creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no account with that email exists yet. A no-op when
// the variables are unset.
func seedAdminUser(ctx context.Context, repo repositories.AdminUserRepository) error {
	email := config.GetEnv("ADMIN_EMAIL", "")
	password := config.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	slog.Info("seeding admin user", "email", email)
	return repo.Create(ctx, &models.AdminUser{
		Name:     "Administrator",
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	})
}
