package project

import (
	"time"

	"github.com/rpggio/staffplan/internal/planning"
)

// DealStatus is the sales state of a project.
type DealStatus string

const (
	DealPending DealStatus = "PENDING"
	DealWon     DealStatus = "WON"
	DealLost    DealStatus = "LOST"
)

// Valid reports whether s is a known deal status.
func (s DealStatus) Valid() bool {
	switch s {
	case DealPending, DealWon, DealLost:
		return true
	}
	return false
}

// Project is a client engagement that employees are allocated to.
type Project struct {
	ID                     string        `json:"id"`
	TenantID               string        `json:"tenant_id"`
	Code                   string        `json:"code"`
	Name                   string        `json:"name"`
	ClientID               string        `json:"client_id"`
	ClientName             string        `json:"client_name,omitempty"`
	Currency               string        `json:"currency,omitempty"`
	ContractOwner          string        `json:"contract_owner"`
	StartDate              planning.Date `json:"start_date"`
	EndDate                planning.Date `json:"end_date"`
	DealStatus             DealStatus    `json:"deal_status"`
	Billable               bool          `json:"billable"`
	EngagementManagerEmail string        `json:"engagement_manager_email"`
	Note                   string        `json:"note,omitempty"`
	KnowledgeIDs           []string      `json:"knowledge_ids"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}

// Window returns the project's date range when both bounds are set.
func (p Project) Window() *planning.Range {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return nil
	}
	return &planning.Range{Start: p.StartDate, End: p.EndDate}
}

// Permits reports whether r lies inside the project's dates. Unset bounds
// are open.
func (p Project) Permits(r planning.Range) bool {
	if !p.StartDate.IsZero() && r.Start.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && r.End.After(p.EndDate) {
		return false
	}
	return true
}

// Planning returns the engine view of the project.
func (p Project) Planning() planning.Project {
	return planning.Project{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		RequiredSkillIDs: p.KnowledgeIDs,
		Window:           p.Window(),
	}
}

// ListOptions filters project listings.
type ListOptions struct {
	ClientID   string
	DealStatus DealStatus
	Limit      int
	Offset     int
}

// ListResult is one page of projects with the total matching count.
type ListResult struct {
	Items []Project `json:"items"`
	Total int       `json:"total"`
}
