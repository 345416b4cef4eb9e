package usecase

import (
	"fmt"
	"strings"

	"github.com/serenelion/earthcare-network/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCampaignInput(name string, template entity.EmailTemplate) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(template.Subject) == "" {
		errors = append(errors, ValidationError{"subject", "is required"})
	}

	if strings.TrimSpace(template.HTMLBody) == "" && strings.TrimSpace(template.TextBody) == "" {
		errors = append(errors, ValidationError{"body", "html or text body is required"})
	}

	return errors
}

func joinValidationErrors(errors []ValidationError) string {
	parts := make([]string, len(errors))
	for i, e := range errors {
		parts[i] = e.Field + " (" + e.Message + ")"
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
