package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/OPS-PIvers/Schoology-to-Forms/internal/api/http"
	auth "github.com/OPS-PIvers/Schoology-to-Forms/internal/auth/middleware"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/config"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/convert"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/db"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/forms"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/logger"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/results"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	store, err := openResults(cfg)
	if err != nil {
		log.Fatalf("results store: %v", err)
	}

	ws := storage.NewWorkspace(cfg.WorkspacePath)
	svc := convert.New(ws, zl)
	formSvc := forms.NewLocalService(bs)
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Post("/convert", api.ConvertHandler(svc, formSvc, store, zl))
	})

	zl.Info("converterd listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("http: %v", err)
	}
}

func openResults(cfg config.Config) (results.Store, error) {
	switch cfg.ResultsDriver {
	case "sqlite", "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.ResultsDriver), cfg.ResultsDSN)
		if err != nil {
			return nil, err
		}
		return results.NewSQLStore(dbh, cfg.ResultsDriver), nil
	default:
		return results.NewCSVStore(cfg.ResultsCSVPath)
	}
}
