package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/roomverse/platform/internal/auth"
	"github.com/roomverse/platform/internal/platform"
)

const (
	devDeveloperID = "dev_roomverse_dev_000000000001"
	devAdminID     = "adm_roomverse_dev_000000000001"
	devProjectID   = "proj_roomverse_dev_00000000001"
)

type assetsFile struct {
	Items   []assetEntry `yaml:"items"`
	Avatars []assetEntry `yaml:"avatars"`
	Rooms   []assetEntry `yaml:"rooms"`
}

type assetEntry struct {
	ID             string   `yaml:"id"`
	ResourceID     string   `yaml:"resource_id"`
	Name           string   `yaml:"name"`
	IsPremium      bool     `yaml:"is_premium"`
	IsFree         bool     `yaml:"is_free"`
	Price          *float64 `yaml:"price"`
	OwnerProjectID string   `yaml:"owner_project_id"`
	AccessPolicy   string   `yaml:"access_policy"`
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("Seeding platform database...")

	fmt.Println("  Inserting developer...")
	passwordHash, err := auth.HashPassword("password")
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO developers (id, email, name, status, password_hash) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
		devDeveloperID, "dev@roomverse.test", "Dev Developer", "ACTIVE", passwordHash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insert developer: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Inserting admin...")
	adminHash, err := auth.HashPassword("password")
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash admin password: %v\n", err)
		os.Exit(1)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO admins (id, email, name, role, status, password_hash) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
		devAdminID, "admin@roomverse.test", "Dev Admin", "SUPER_ADMIN", "ACTIVE", adminHash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insert admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Inserting project...")
	_, err = pool.Exec(ctx,
		`INSERT INTO projects (id, developer_id, name, status) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
		devProjectID, devDeveloperID, "Dev Project", "ACTIVE")
	if err != nil {
		fmt.Fprintf(os.Stderr, "insert project: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Inserting API key...")
	rawKey := platform.NewAPIKey()
	_, err = pool.Exec(ctx,
		`INSERT INTO api_keys (id, key, name, scopes, status, project_id) VALUES ($1, $2, $3, $4, $5, $6)`,
		platform.NewID(), rawKey, "dev key", []string{"*"}, "ACTIVE", devProjectID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insert api key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Seeding assets from YAML...")
	if err := seedAssets(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed assets: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Seed complete!")
	fmt.Println()
	fmt.Println("  Developer login: dev@roomverse.test / password")
	fmt.Println("  Admin login:     admin@roomverse.test / password")
	fmt.Printf("  API key:         %s\n", rawKey)
}

// seedAssets reads seeds/platform/assets.yaml and upserts items, avatars,
// and rooms.
func seedAssets(ctx context.Context, pool *pgxpool.Pool) error {
	// Resolve path relative to this source file so it works regardless of cwd.
	_, thisFile, _, _ := runtime.Caller(0)
	yamlPath := filepath.Join(filepath.Dir(thisFile), "assets.yaml")

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("read assets.yaml: %w", err)
	}

	var af assetsFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return fmt.Errorf("parse assets.yaml: %w", err)
	}

	tables := []struct {
		name    string
		entries []assetEntry
	}{
		{"items", af.Items},
		{"avatars", af.Avatars},
		{"rooms", af.Rooms},
	}
	for _, tbl := range tables {
		for _, a := range tbl.entries {
			fmt.Printf("    Upserting %s %s (%s)\n", tbl.name, a.ID, a.Name)
			policy := a.AccessPolicy
			if policy == "" {
				policy = "PRIVATE"
			}
			owner := a.OwnerProjectID
			if owner == "@project" {
				owner = devProjectID
			}
			_, err := pool.Exec(ctx,
				`INSERT INTO `+tbl.name+` (id, resource_id, name, is_premium, is_free, price, owner_project_id, access_policy)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				 ON CONFLICT (id) DO UPDATE SET
				   name = EXCLUDED.name,
				   is_premium = EXCLUDED.is_premium,
				   is_free = EXCLUDED.is_free,
				   price = EXCLUDED.price,
				   owner_project_id = EXCLUDED.owner_project_id,
				   access_policy = EXCLUDED.access_policy`,
				a.ID, a.ResourceID, a.Name, a.IsPremium, a.IsFree, a.Price, owner, policy)
			if err != nil {
				return fmt.Errorf("upsert %s %s: %w", tbl.name, a.ID, err)
			}
		}
	}

	return nil
}
