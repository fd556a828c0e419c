package employee

import (
	"fmt"
	"net/mail"
	"strings"
)

func validate(e *Employee) error {
	if strings.TrimSpace(e.GivenName) == "" {
		return fmt.Errorf("%w: given_name is required", ErrInvalidInput)
	}
	if err := validateEmail("company_email", e.CompanyEmail); err != nil {
		return err
	}
	return validateEmail("personal_email", e.PersonalEmail)
}

func validateEmail(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("%w: %s is not an email address", ErrInvalidInput, field)
	}
	return nil
}

// normalizeIDs trims, drops empties and duplicates, keeping order.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
