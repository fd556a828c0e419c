package employee

import (
	"strings"
	"time"

	"github.com/rpggio/staffplan/internal/planning"
)

// Employee is a person who can be staffed on projects.
type Employee struct {
	ID            string        `json:"id"`
	TenantID      string        `json:"tenant_id"`
	GivenName     string        `json:"given_name"`
	Surname       string        `json:"surname,omitempty"`
	CompanyEmail  string        `json:"company_email"`
	PersonalEmail string        `json:"personal_email"`
	Citizenship   string        `json:"citizenship,omitempty"`
	TaxResidence  string        `json:"tax_residence,omitempty"`
	Location      string        `json:"location,omitempty"`
	MobileNumber  string        `json:"mobile_number,omitempty"`
	HomeAddress   string        `json:"home_address,omitempty"`
	BirthDate     planning.Date `json:"birth_date"`
	IsActive      bool          `json:"is_active"`
	IsDeleted     bool          `json:"is_deleted"`
	KnowledgeIDs  []string      `json:"knowledge_ids"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// DisplayName joins given name and surname.
func (e Employee) DisplayName() string {
	return strings.TrimSpace(e.GivenName + " " + e.Surname)
}

// Planning returns the engine view of the employee.
func (e Employee) Planning() planning.Employee {
	return planning.Employee{ID: e.ID, Name: e.DisplayName(), SkillIDs: e.KnowledgeIDs}
}

// ListOptions filters employee listings. Deleted employees are never listed.
type ListOptions struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ListResult is one page of employees with the total matching count.
type ListResult struct {
	Items []Employee `json:"items"`
	Total int        `json:"total"`
}
