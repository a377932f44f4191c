package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/config"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/logging"
	miniorepo "github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	httpx "github.com/njprem/TripPlanner_APP_BackEnd/internal/transport/http"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/transport/mail"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

const (
	migrationsDir        = "migrations"
	swaggerDocPath       = "docs/swagger.yaml"
	sessionPurgeInterval = time.Hour
	shutdownTimeout      = 15 * time.Second
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		shipper, err := logging.NewShipper(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash shipping disabled: %v", err)
		} else {
			defer shipper.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, shipper))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.DatabaseURL, postgres.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, migrationsDir); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	roleRepo := postgres.NewRoleRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	provinceRepo := postgres.NewProvinceRepo(db)
	destinationRepo := postgres.NewDestinationRepo(db)
	tripRepo := postgres.NewTripRepo(db)
	itineraryRepo := postgres.NewItineraryRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)

	var storage ports.ObjectStorage
	if cfg.StorageEnabled() {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect minio: %v", err)
		}
		minioStorage := miniorepo.NewStorage(client, cfg.MinIOPublicURL)
		if err := minioStorage.EnsureBucket(ctx, cfg.MinIOBucketDestinations); err != nil {
			log.Fatalf("ensure bucket %s: %v", cfg.MinIOBucketDestinations, err)
		}
		storage = minioStorage
	} else {
		log.Println("MinIO not configured; hero image uploads are disabled")
	}

	var notifier service.BookingNotifier
	if cfg.MailEnabled() {
		notifier = mail.NewBookingMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Println("SMTP not configured; booking confirmations will not be mailed")
	}

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, roleRepo, sessionRepo, jwtManager, cfg.GoogleAudience, cfg.AdminEmails)
	destinationService := service.NewDestinationService(destinationRepo, categoryRepo, provinceRepo, storage, service.DestinationServiceConfig{
		Bucket:        cfg.MinIOBucketDestinations,
		ImageMaxBytes: cfg.DestinationImageMaxBytes,
	})
	categoryService := service.NewCategoryService(categoryRepo, provinceRepo)
	itineraryService := service.NewItineraryService(destinationRepo, categoryRepo, itineraryRepo, tripRepo)
	tripService := service.NewTripService(tripRepo, destinationRepo)
	reviewService := service.NewReviewService(reviewRepo, destinationRepo, service.ReviewServiceConfig{AutoApprove: cfg.ReviewAutoApprove})
	favoriteService := service.NewFavoriteService(favoriteRepo, destinationRepo)
	bookingService := service.NewBookingService(bookingRepo, tripRepo, notifier)
	dashboardService := service.NewDashboardService(statsRepo, destinationRepo)

	if err := itineraryService.ValidateTagMapping(ctx); err != nil {
		if cfg.StrictTagMapping {
			log.Fatalf("preference tag mapping: %v", err)
		}
		log.Printf("Warning: preference tag mapping: %v", err)
	}

	go purgeSessions(ctx, authService)

	limiter := httpx.NewRateLimiter(cfg.ItineraryRatePerMinute, cfg.ItineraryRateBurst)
	go limiter.Run(ctx.Done())

	e := httpx.NewRouter(cfg.AllowOrigins, db.PingContext)
	httpx.RegisterPages(e, cfg.FrontendURL)
	if err := httpx.RegisterSwagger(e, swaggerDocPath); err != nil {
		log.Printf("swagger UI disabled: %v", err)
	}
	httpx.RegisterAuth(e, authService)
	httpx.RegisterDestinations(e, authService, destinationService)
	httpx.RegisterCategories(e, authService, categoryService, itineraryService)
	httpx.RegisterItineraries(e, authService, itineraryService, limiter)
	httpx.RegisterTrips(e, authService, tripService)
	httpx.RegisterReviews(e, authService, reviewService)
	httpx.RegisterFavorites(e, authService, favoriteService)
	httpx.RegisterBookings(e, authService, bookingService)
	httpx.RegisterDashboard(e, authService, dashboardService)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

func purgeSessions(ctx context.Context, auth *service.AuthService) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := auth.PurgeExpiredSessions(ctx)
			if err != nil {
				log.Printf("purge sessions: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("purged %d expired sessions", removed)
			}
		}
	}
}
