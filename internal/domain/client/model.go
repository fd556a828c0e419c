package client

import "time"

// MaxCodeLength bounds Client.Code.
const MaxCodeLength = 8

// Client is a customer that owns projects.
type Client struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Code        string    `json:"client_code"`
	Address     string    `json:"address,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty"`
	CountryCode string    `json:"country_code"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListOptions filters client listings. Deleted clients are never listed.
type ListOptions struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ListResult is one page of clients with the total matching count.
type ListResult struct {
	Items []Client `json:"items"`
	Total int      `json:"total"`
}
