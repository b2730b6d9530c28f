package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/projectwalnut/backend/config"
	"github.com/projectwalnut/backend/handlers"
	"github.com/projectwalnut/backend/middleware"
	"github.com/projectwalnut/backend/service"
	"github.com/projectwalnut/backend/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect", "error", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes:", err)
	}

	var media *service.MediaService
	if cfg.S3Bucket != "" {
		media, err = service.NewMediaService(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		logger.Warn("AWS_S3_BUCKET not set, thumbnail uploads disabled")
	}

	postSvc := &service.PostService{Posts: db, Users: db, SiteConfig: db, Cfg: cfg, Log: logger}
	userSvc := &service.UserService{Users: db, SiteConfig: db, Cfg: cfg, Log: logger}
	commentSvc := &service.CommentService{Comments: db, Posts: db, Users: db, SiteConfig: db, Log: logger}
	siteConfigSvc := &service.SiteConfigService{SiteConfig: db, Users: db, Cfg: cfg, Log: logger}

	// Make sure the site configuration document exists before serving.
	if _, err := siteConfigSvc.Public(ctx); err != nil {
		log.Fatal("site config:", err)
	}

	authHandler := &handlers.AuthHandler{Users: userSvc, Cfg: cfg, Log: logger}
	postHandler := &handlers.PostHandler{Posts: postSvc, Log: logger}
	publicHandler := &handlers.PublicHandler{
		Posts:      postSvc,
		Comments:   commentSvc,
		SiteConfig: siteConfigSvc,
		Users:      db,
		Log:        logger,
	}
	userHandler := &handlers.UserHandler{Users: userSvc, Log: logger}
	siteConfigHandler := &handlers.SiteConfigHandler{SiteConfig: siteConfigSvc, Log: logger}
	uploadHandler := &handlers.UploadHandler{Media: media, Cfg: cfg, Log: logger}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public reading surface. OptionalAuth lets logged-in users see
	// unapproved posts on the detail page.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWTSecret))
		r.Get("/", publicHandler.Home)
		r.Get("/post/{postID}", publicHandler.PostDetail)
		r.Get("/search", publicHandler.Search)
		r.Post("/post/{postID}/comment", publicHandler.AddComment)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Get("/admin/dashboard", postHandler.Dashboard)
			r.Post("/admin/posts", postHandler.Create)
			r.Put("/admin/posts/{postID}", postHandler.Update)
			r.Delete("/admin/posts/{postID}", postHandler.Delete)

			r.Delete("/admin/comments/{commentID}", publicHandler.DeleteComment)

			r.Get("/admin/users", userHandler.List)
			r.Put("/admin/users/{userID}", userHandler.Update)
			r.Delete("/admin/users/{userID}", userHandler.Delete)

			r.Get("/admin/site-config", siteConfigHandler.Get)
			r.Put("/admin/site-config", siteConfigHandler.Update)

			r.Post("/admin/upload", uploadHandler.UploadThumbnail)
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
