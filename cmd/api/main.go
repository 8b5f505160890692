package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"fragranceapi/internal/admin"
	"fragranceapi/internal/auth"
	"fragranceapi/internal/config"
	"fragranceapi/internal/httpx"
	"fragranceapi/internal/media"
	"fragranceapi/internal/perfume"
	"fragranceapi/internal/session"
	"fragranceapi/internal/web"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	initLogger(cfg)

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	mediaStore, err := media.NewFSStore(cfg.MediaDir, cfg.PublicBaseURL+"/media")
	if err != nil {
		log.Fatal().Err(err).Msg("open media store")
	}

	perfumeRepo := perfume.NewPostgresRepo(dbPool, cfg.DBTimeout)
	adminRepo := admin.NewPostgresRepo(dbPool, cfg.DBTimeout)
	sessionRepo := session.NewPostgresRepo(dbPool, cfg.DBTimeout)
	credentialRepo := auth.NewPostgresRepo(dbPool, cfg.DBTimeout)

	catalogService := perfume.NewService(perfumeRepo, mediaStore)
	adminService := admin.NewService(adminRepo)
	sessionService := session.NewService(sessionRepo)
	authService := auth.NewService(cfg.JWTSecret, credentialRepo, sessionService, adminService)

	go purgeSessions(context.Background(), sessionService)

	catalogHandler := perfume.NewHTTPHandler(catalogService)
	authHandler := auth.NewHTTPHandler(authService)
	webHandler, err := web.NewHandler(catalogService)
	if err != nil {
		log.Fatal().Err(err).Msg("build storefront")
	}

	gate := func(h http.Handler) http.Handler {
		return httpx.AuthMiddleware(cfg.JWTSecret, sessionService)(
			admin.RequireAdmin(adminService)(h))
	}

	router := newRouter(routerDeps{
		catalog:  catalogHandler,
		auth:     authHandler,
		web:      webHandler,
		gate:     gate,
		pingDB:   dbPool.Ping,
		mediaDir: cfg.MediaDir,
	})

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := httpx.RequestIDMiddleware(
		httpx.AccessLogMiddleware(
			httpx.RecoveryMiddleware(
				httpx.CORSMiddleware(cfg.AllowedOrigins)(
					httpx.SecurityHeadersMiddleware(cfg.EnableHSTS)(
						httpx.RequestSizeLimitMiddleware(cfg.MaxRequestBody)(
							rateLimit.Middleware(router)))))))

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}

type routerDeps struct {
	catalog  *perfume.HTTPHandler
	auth     *auth.HTTPHandler
	web      *web.Handler
	gate     func(http.Handler) http.Handler
	pingDB   func(context.Context) error
	mediaDir string
}

func newRouter(d routerDeps) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.pingDB(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Storefront and stored images.
	router.HandleFunc("GET /{$}", d.web.Home)
	router.HandleFunc("GET /shop", d.web.Shop)
	router.Handle("GET /media/", http.StripPrefix("/media/",
		http.FileServer(http.Dir(d.mediaDir))))

	// Public catalog read path.
	router.HandleFunc("GET /api/perfumes", d.catalog.List)
	router.HandleFunc("GET /api/perfumes/{id}", d.catalog.Get)

	// Admin surface: login is open, everything else sits behind the
	// session check plus the admin_users gate.
	router.HandleFunc("POST /admin/login", d.auth.Login)
	router.Handle("POST /admin/logout", d.gate(http.HandlerFunc(d.auth.Logout)))
	router.Handle("GET /admin/me", d.gate(http.HandlerFunc(d.auth.Me)))
	router.Handle("GET /admin/perfumes", d.gate(http.HandlerFunc(d.catalog.List)))
	router.Handle("POST /admin/perfumes", d.gate(http.HandlerFunc(d.catalog.Create)))
	router.Handle("PUT /admin/perfumes/{id}", d.gate(http.HandlerFunc(d.catalog.Update)))
	router.Handle("DELETE /admin/perfumes/{id}", d.gate(http.HandlerFunc(d.catalog.Delete)))

	return router
}

// purgeSessions drops expired admin sessions on an hourly sweep. Expired
// rows are already rejected at the gate; the sweep just keeps the table
// from growing without bound.
func purgeSessions(ctx context.Context, sessions *session.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		purged, err := sessions.PurgeExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msg("purge expired sessions")
			continue
		}
		if purged > 0 {
			log.Info().Int64("purged", purged).Msg("expired sessions removed")
		}
	}
}

func initLogger(cfg config.Config) {
	if cfg.IsDevelopment() {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("dsn", redactDSN(dsn)).Msg("cannot ping database")
	}
	log.Info().Msg("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
