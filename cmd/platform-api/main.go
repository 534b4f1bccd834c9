package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/roomverse/platform/internal/api"
	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/cache"
	"github.com/roomverse/platform/internal/config"
	"github.com/roomverse/platform/internal/db"
	"github.com/roomverse/platform/internal/jobs"
	"github.com/roomverse/platform/internal/logging"
	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/store"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "create-admin":
			createAdmin(os.Args[2:])
			return
		case "create-api-key":
			createAPIKey(os.Args[2:])
			return
		}
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("platform-api"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, logger)
	defer jobsClient.Close()

	srv := api.NewServer(logger, api.Deps{
		Pool:  pool,
		Cache: cache.NewRedis(redisClient),
		Touch: jobsClient.TouchFunc(),
		Cfg:   cfg,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting platform API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

func createAdmin(args []string) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "Admin email (required)")
	name := fs.String("name", "", "Admin display name (required)")
	password := fs.String("password", "", "Admin password (required)")
	role := fs.String("role", string(model.RoleAdmin), "Admin role: ADMIN or SUPER_ADMIN")
	fs.Parse(args)

	if *email == "" || *name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "error: --email, --name and --password are required")
		fmt.Fprintln(os.Stderr, "usage: platform-api create-admin --email <email> --name <name> --password <password> [--role SUPER_ADMIN]")
		os.Exit(1)
	}
	adminRole := model.AdminRole(*role)
	if adminRole != model.RoleAdmin && adminRole != model.RoleSuperAdmin {
		fmt.Fprintf(os.Stderr, "error: unknown role %q\n", *role)
		os.Exit(1)
	}

	pool := bootstrap()
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to hash password: %v\n", err)
		os.Exit(1)
	}

	admin, err := store.New(pool).CreateAdmin(ctx, *email, *name, hash, adminRole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully.\n\n")
	fmt.Printf("  Email:  %s\n", admin.Email)
	fmt.Printf("  ID:     %s\n", admin.ID)
	fmt.Printf("  Role:   %s\n", admin.Role)
}

func createAPIKey(args []string) {
	fs := flag.NewFlagSet("create-api-key", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID the key belongs to (required)")
	name := fs.String("name", "", "Name for the API key (required)")
	scopes := fs.String("scopes", "", "Comma-separated scopes (default: wildcard)")
	fs.Parse(args)

	if *projectID == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "error: --project and --name are required")
		fmt.Fprintln(os.Stderr, "usage: platform-api create-api-key --project <id> --name <name> [--scopes resource:read,resource:download]")
		os.Exit(1)
	}

	pool := bootstrap()
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var scopeList []string
	if *scopes != "" {
		scopeList = strings.Split(*scopes, ",")
	}

	key, err := store.New(pool).CreateAPIKey(ctx, *projectID, *name, scopeList, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API key created successfully.\n\n")
	fmt.Printf("  Name:   %s\n", key.Name)
	fmt.Printf("  ID:     %s\n", key.ID)
	fmt.Printf("  Key:    %s\n\n", key.Key)
	fmt.Printf("Save this key - it will not be shown again.\n")
}

func bootstrap() *pgxpool.Pool {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	return pool
}
