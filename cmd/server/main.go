package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"willowmoon/internal/config"
	"willowmoon/internal/database"
	"willowmoon/internal/handlers"
	"willowmoon/internal/repository"
	"willowmoon/internal/security"
	"willowmoon/internal/service"
	"willowmoon/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	ritualRepo := repository.NewRitualRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	pageRepo := repository.NewPageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	bookingService := service.NewBookingService(bookingRepo, eventRepo, ritualRepo)
	contentService := service.NewContentService(journalRepo, pageRepo)

	emailService, err := service.NewEmailService(context.Background(),
		cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.StudioInbox, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	if err := contentService.SeedDefaultPages(); err != nil {
		log.Printf("Warning: Failed to seed default pages: %v", err)
	}

	// CSRF pairs live in a session store: cookies by default, redis when
	// configured so pairs survive restarts behind a load balancer
	var sessionStore security.SessionStore
	if cfg.RedisURL != "" {
		redisStore, err := security.NewRedisStore(cfg.RedisURL, "wm")
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		sessionStore = redisStore
		log.Println("Session store: redis")
	} else {
		sessionStore = security.NewCookieStore(cfg.IsProduction())
		log.Println("Session store: cookies")
	}
	csrf := security.NewCSRF(sessionStore, cfg.CSRFTokenTTL)

	// Object storage; uploads stay disabled when no bucket is configured
	var uploadStore, imageStore storage.ObjectStore
	if cfg.S3UploadBucket != "" {
		store, err := storage.NewS3Store(context.Background(), cfg.S3Region, cfg.S3UploadBucket, cfg.S3PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize upload storage: %v", err)
		}
		uploadStore = store
	}
	if cfg.S3ImageBucket != "" {
		store, err := storage.NewS3Store(context.Background(), cfg.S3Region, cfg.S3ImageBucket, cfg.S3PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize image storage: %v", err)
		}
		imageStore = store
	}

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email"},
	}

	// Handlers
	limiter := security.NewRateLimiter(30, time.Minute)
	middleware := handlers.NewMiddleware(authService, csrf, limiter)
	csrfHandler := handlers.NewCSRFHandler(csrf)
	submissionHandler := handlers.NewSubmissionHandler(bookingService, subscriberRepo, emailService)
	contentHandler := handlers.NewContentHandler(contentService, eventRepo, ritualRepo)
	authHandler := handlers.NewAuthHandler(authService, csrf, googleOAuth, cfg.OAuthRedirectBaseURL)
	adminHandler := handlers.NewAdminHandler(eventRepo, ritualRepo, journalRepo, pageRepo, subscriberRepo, bookingService, emailService)
	uploadHandler := handlers.NewUploadHandler(uploadStore, imageStore, cfg.UploadMaxSize, cfg.ImageStorageMaxSize)

	mux := http.NewServeMux()

	// Public content
	mux.HandleFunc("GET /api/events", contentHandler.ListEvents)
	mux.HandleFunc("GET /api/events/{slug}", contentHandler.GetEvent)
	mux.HandleFunc("GET /api/rituals", contentHandler.ListRituals)
	mux.HandleFunc("GET /api/rituals/{slug}", contentHandler.GetRitual)
	mux.HandleFunc("GET /api/journal", contentHandler.ListJournal)
	mux.HandleFunc("GET /api/journal/{slug}", contentHandler.GetJournalPost)
	mux.HandleFunc("GET /api/pages/{slug}", contentHandler.GetPage)
	mux.HandleFunc("GET /api/page-content/{key}", contentHandler.GetPageContent)

	// Form submission pipeline
	mux.HandleFunc("GET /api/csrf-token", csrfHandler.Token)
	mux.HandleFunc("POST /api/contact", middleware.RateLimit(middleware.CSRFProtect(submissionHandler.Contact)))
	mux.HandleFunc("POST /api/bookings", middleware.RateLimit(middleware.CSRFProtect(submissionHandler.Booking)))
	mux.HandleFunc("POST /api/newsletter", middleware.RateLimit(middleware.CSRFProtect(submissionHandler.Newsletter)))
	mux.HandleFunc("POST /api/newsletter/unsubscribe", middleware.RateLimit(submissionHandler.Unsubscribe))
	mux.HandleFunc("POST /api/upload", middleware.RateLimit(middleware.CSRFProtect(uploadHandler.Upload)))

	// Admin auth
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(middleware.CSRFProtect(authHandler.Login)))
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/admin/me", middleware.RequireAdmin(authHandler.Me))
	mux.HandleFunc("GET /api/admin/oauth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /api/admin/oauth/google/callback", authHandler.GoogleOAuthCallback)

	// Admin CRUD
	mux.HandleFunc("GET /api/admin/events", middleware.RequireAdmin(adminHandler.ListEvents))
	mux.HandleFunc("POST /api/admin/events", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreateEvent)))
	mux.HandleFunc("PUT /api/admin/events/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdateEvent)))
	mux.HandleFunc("DELETE /api/admin/events/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteEvent)))
	mux.HandleFunc("GET /api/admin/rituals", middleware.RequireAdmin(adminHandler.ListRituals))
	mux.HandleFunc("POST /api/admin/rituals", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreateRitual)))
	mux.HandleFunc("PUT /api/admin/rituals/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdateRitual)))
	mux.HandleFunc("DELETE /api/admin/rituals/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteRitual)))
	mux.HandleFunc("GET /api/admin/journal", middleware.RequireAdmin(adminHandler.ListJournal))
	mux.HandleFunc("POST /api/admin/journal", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreateJournalPost)))
	mux.HandleFunc("PUT /api/admin/journal/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdateJournalPost)))
	mux.HandleFunc("DELETE /api/admin/journal/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteJournalPost)))
	mux.HandleFunc("GET /api/admin/pages", middleware.RequireAdmin(adminHandler.ListPages))
	mux.HandleFunc("POST /api/admin/pages", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreatePage)))
	mux.HandleFunc("PUT /api/admin/pages/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdatePage)))
	mux.HandleFunc("DELETE /api/admin/pages/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeletePage)))
	mux.HandleFunc("GET /api/admin/page-content/{key}", middleware.RequireAdmin(adminHandler.GetPageContent))
	mux.HandleFunc("PUT /api/admin/page-content/{key}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpsertPageContent)))

	// Admin bookings and subscribers
	mux.HandleFunc("GET /api/admin/bookings", middleware.RequireAdmin(adminHandler.ListBookings))
	mux.HandleFunc("POST /api/admin/bookings/{id}/confirm", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.ConfirmBooking)))
	mux.HandleFunc("POST /api/admin/bookings/{id}/cancel", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CancelBooking)))
	mux.HandleFunc("GET /api/admin/subscribers", middleware.RequireAdmin(adminHandler.ListSubscribers))

	// Admin image storage
	mux.HandleFunc("POST /api/admin/images", middleware.RequireAdmin(middleware.CSRFProtect(uploadHandler.AdminImage)))

	handler := handlers.Logging(handlers.Recover(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired admin sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		}
	}
}
