package store

import (
	"context"
	"fmt"

	"github.com/roomverse/platform/internal/model"
	"github.com/roomverse/platform/internal/platform"
)

// FindAdmin retrieves an admin account by ID.
func (s *Store) FindAdmin(ctx context.Context, id string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.QueryRow(ctx,
		`SELECT id, email, name, role, status, created_at, updated_at
		 FROM admins WHERE id = $1`, id,
	).Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find admin %s: %w", id, err)
	}
	return &a, nil
}

// FindAdminByEmail retrieves an admin account and its password hash for login.
func (s *Store) FindAdminByEmail(ctx context.Context, email string) (*model.Admin, string, error) {
	var a model.Admin
	var passwordHash string
	err := s.db.QueryRow(ctx,
		`SELECT id, email, name, role, status, password_hash, created_at, updated_at
		 FROM admins WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.Status, &passwordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("find admin by email: %w", err)
	}
	return &a, passwordHash, nil
}

// FindDeveloper retrieves a developer account by ID.
func (s *Store) FindDeveloper(ctx context.Context, id string) (*model.Developer, error) {
	var d model.Developer
	err := s.db.QueryRow(ctx,
		`SELECT id, email, name, status, created_at, updated_at
		 FROM developers WHERE id = $1`, id,
	).Scan(&d.ID, &d.Email, &d.Name, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find developer %s: %w", id, err)
	}
	return &d, nil
}

// FindDeveloperByEmail retrieves a developer account and its password hash
// for login.
func (s *Store) FindDeveloperByEmail(ctx context.Context, email string) (*model.Developer, string, error) {
	var d model.Developer
	var passwordHash string
	err := s.db.QueryRow(ctx,
		`SELECT id, email, name, status, password_hash, created_at, updated_at
		 FROM developers WHERE email = $1`, email,
	).Scan(&d.ID, &d.Email, &d.Name, &d.Status, &passwordHash, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("find developer by email: %w", err)
	}
	return &d, passwordHash, nil
}

// CreateAdmin inserts an admin account. Used by the create-admin subcommand.
func (s *Store) CreateAdmin(ctx context.Context, email, name, passwordHash string, role model.AdminRole) (*model.Admin, error) {
	a := &model.Admin{
		ID:     platform.NewID(),
		Email:  email,
		Name:   name,
		Role:   role,
		Status: model.AccountActive,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO admins (id, email, name, role, status, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		 RETURNING created_at, updated_at`,
		a.ID, a.Email, a.Name, a.Role, a.Status, passwordHash,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return a, nil
}

// FindProject retrieves a project by ID.
func (s *Store) FindProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRow(ctx,
		`SELECT id, developer_id, name, status, created_at, updated_at
		 FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.DeveloperID, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &p, nil
}

// ListProjects retrieves all projects owned by a developer.
func (s *Store) ListProjects(ctx context.Context, developerID string) ([]model.Project, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, developer_id, name, status, created_at, updated_at
		 FROM projects WHERE developer_id = $1 ORDER BY created_at DESC`, developerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.DeveloperID, &p.Name, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}
