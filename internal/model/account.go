package model

import "time"

// AccountStatus is shared by developer and admin accounts. Only ACTIVE
// accounts may authenticate.
type AccountStatus string

const (
	AccountInactive  AccountStatus = "INACTIVE"
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// AdminRole gates admin-only operations.
type AdminRole string

const (
	RoleAdmin      AdminRole = "ADMIN"
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"
)

// Developer is a platform developer account owning one or more projects.
type Developer struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Admin is a platform operator account.
type Admin struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      AdminRole     `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
