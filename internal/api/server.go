package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/roomverse/platform/internal/api/handler"
	mw "github.com/roomverse/platform/internal/api/middleware"
	"github.com/roomverse/platform/internal/api/response"
	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/cache"
	"github.com/roomverse/platform/internal/config"
	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/signer"
	"github.com/roomverse/platform/internal/store"
)

// Server wires the authorization engine into the HTTP surface.
type Server struct {
	router chi.Router
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

// Deps collects the server's external dependencies.
type Deps struct {
	Pool   *pgxpool.Pool
	Cache  cache.Store
	Touch  auth.TouchFunc
	Signer handler.DownloadSigner
	Cfg    *config.Config
}

// NewServer constructs the HTTP server.
func NewServer(logger zerolog.Logger, deps Deps) *Server {
	st := store.New(deps.Pool)
	tokens := auth.NewTokenManager(deps.Cfg.JWTSecret, deps.Cfg.JWTIssuer, deps.Cfg.TokenTTL)
	revocations := auth.NewRevocationList(deps.Cache)
	validator := auth.NewValidator(auth.ValidatorConfig{
		Store:           st,
		Cache:           deps.Cache,
		Tokens:          tokens,
		Revocations:     revocations,
		Touch:           deps.Touch,
		Logger:          logger,
		APIKeyCacheTTL:  deps.Cfg.APIKeyCacheTTL,
		AccountCacheTTL: deps.Cfg.AccountCacheTTL,
	})
	resolver := auth.NewResolver(st, logger)

	public := auth.DefaultPublicRoutes()
	authn := mw.NewAuthenticator(validator, public)
	gate := mw.NewResourceGate(resolver)

	dlSigner := deps.Signer
	if dlSigner == nil {
		dlSigner = signer.NewLocal("https://cdn.roomverse.dev", deps.Cfg.JWTSecret)
	}

	authHandler := handler.NewAuth(st, tokens, revocations, logger)
	keyHandler := handler.NewAPIKey(st, logger)
	grantHandler := handler.NewGrant(st, logger)
	assetHandler := handler.NewAsset(st, dlSigner, logger)
	assetAdminHandler := handler.NewAssetAdmin(st, logger)

	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		pool:   deps.Pool,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/api/health", s.handleHealth)

	// Login endpoints are public but rate-limited per client IP.
	s.router.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/api/admin/login", authHandler.AdminLogin)
		r.Post("/api/developer/login", authHandler.DeveloperLogin)
	})

	// Public asset previews, declared on the allow-list.
	s.router.Get("/api/items/{id}/preview", assetHandler.Preview(model.KindItem))
	s.router.Get("/api/avatars/{id}/preview", assetHandler.Preview(model.KindAvatar))
	s.router.Get("/api/rooms/{id}/preview", assetHandler.Preview(model.KindRoom))

	// Admin surface: bearer token with an admin role.
	s.router.Route("/api/admin", func(r chi.Router) {
		r.Use(authn.RequireAdmin)
		r.Post("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(model.RoleAdmin, model.RoleSuperAdmin))
			r.Put("/grants/{kind}", grantHandler.Upsert)
			r.Delete("/grants/{kind}", grantHandler.Delete)
			r.Post("/assets/{kind}", assetAdminHandler.Create)
			r.Delete("/assets/{kind}/{id}", assetAdminHandler.Delete)
		})
	})

	// Developer surface: bearer token for the developer's own resources.
	s.router.Route("/api/developer", func(r chi.Router) {
		r.Use(authn.RequireDeveloper)
		r.Post("/logout", authHandler.Logout)
		r.Post("/api-keys", keyHandler.Create)
		r.Get("/api-keys/{id}", keyHandler.Get)
		r.Patch("/api-keys/{id}", keyHandler.Update)
		r.Get("/projects/{projectID}/api-keys", keyHandler.List)
		r.Delete("/api-keys/{id}", keyHandler.Revoke)
	})

	// Project surface: API key with resource scopes, gated per asset.
	s.router.Group(func(r chi.Router) {
		r.Use(authn.RequireAPIKey)

		for _, kind := range []model.AssetKind{model.KindItem, model.KindAvatar, model.KindRoom} {
			kind := kind
			base := "/api/" + string(kind) + "s"
			r.With(
				mw.RequireScope("resource:read"),
				gate.Require(kind, auth.ActionAccess),
			).Get(base+"/{id}", assetHandler.Get(kind))
			r.With(
				mw.RequireScope("resource:download"),
				gate.Require(kind, auth.ActionDownload),
			).Get(base+"/{id}/download", assetHandler.Download(kind))
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pool != nil {
		if err := s.pool.Ping(r.Context()); err != nil {
			response.WriteError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
