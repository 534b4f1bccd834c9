package model

import "time"

// Project groups API keys and asset ownership under a developer account.
type Project struct {
	ID          string        `json:"id"`
	DeveloperID string        `json:"developer_id"`
	Name        string        `json:"name"`
	Status      AccountStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
