package repository

const (
	// DefaultPageSize is used when a list request does not set a limit.
	DefaultPageSize = 50
	// MaxPageSize caps the limit of a single list request.
	MaxPageSize = 500
)

// Page selects a slice of an ordered listing. A zero Limit means no limit
// at the repository level; services normalize caller input first.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize applies the default and maximum page sizes.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
