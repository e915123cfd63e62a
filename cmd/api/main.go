package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajputgovind/Trip--Project-Apis/internal/config"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/destination"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/document"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/joining"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/role"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/trip"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/tripview"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
	"github.com/rajputgovind/Trip--Project-Apis/internal/gcp"
	"github.com/rajputgovind/Trip--Project-Apis/internal/handlers"
	apihttp "github.com/rajputgovind/Trip--Project-Apis/internal/http"
	"github.com/rajputgovind/Trip--Project-Apis/internal/mailer"
	"github.com/rajputgovind/Trip--Project-Apis/internal/middleware"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	clients, err := gcp.NewClients(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("gcp client init failed")
	}
	defer clients.Close()

	// Mail pipeline
	sender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	dispatcher := mailer.NewDispatcher(sender, log.With().Str("component", "mailer").Logger())
	dispatcher.Start()
	defer dispatcher.Close()
	notices := mailer.NewNotices(dispatcher, cfg.AdminEmail)

	// Repositories
	roleRepo := role.NewRepo(clients.Firestore)
	userRepo := user.NewRepo(clients.Firestore)
	destinationRepo := destination.NewRepo(clients.Firestore)
	documentRepo := document.NewRepo(clients.Firestore)
	tripRepo := trip.NewRepo(clients.Firestore)
	joiningRepo := joining.NewRepo(clients.Firestore)

	// Services
	signToken := func(userID, email, roleName string, isOrganizer bool) (string, error) {
		return middleware.SignToken(cfg.JWTSecret, userID, email, roleName, isOrganizer)
	}
	userSvc := user.NewService(userRepo, roleRepo, tripRepo, notices, signToken)
	destinationSvc := destination.NewService(destinationRepo)
	documentSvc := document.NewService(documentRepo)
	tripSvc := trip.NewService(tripRepo)
	joiningSvc := joining.NewService(joiningRepo, tripRepo, documentRepo, userRepo,
		notices, log.With().Str("component", "joining").Logger())
	views := tripview.NewComposer(tripRepo, userRepo, destinationRepo, documentRepo, joiningRepo)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:            cfg,
		RoleRepo:       roleRepo,
		UserSvc:        userSvc,
		DestinationSvc: destinationSvc,
		DocumentSvc:    documentSvc,
		TripSvc:        tripSvc,
		JoiningSvc:     joiningSvc,
		Views:          views,
		Uploads:        handlers.NewUploads(cfg, clients),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Port).Str("project", cfg.ProjectID).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("shutting down")
	_ = srv.Shutdown(ctxShutdown)
}
