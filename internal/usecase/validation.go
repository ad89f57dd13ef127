package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateAgentInput(input CreateAgentInput) []ValidationError {
	errors := validateAgentFields(input.Name, input.Email, input.Mobile)

	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	}

	return errors
}

func ValidateUpdateAgentInput(input UpdateAgentInput) []ValidationError {
	return validateAgentFields(input.Name, input.Email, input.Mobile)
}

func ValidateLoginInput(input LoginInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	}

	return errors
}

func validateAgentFields(name, email, mobile string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(mobile) == "" {
		errors = append(errors, ValidationError{"mobile", "is required"})
	} else if !mobilePattern.MatchString(mobile) {
		errors = append(errors, ValidationError{"mobile", "must be exactly 10 digits"})
	}

	return errors
}

// validationFailure folds field errors into a single DomainError.
func validationFailure(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return &DomainError{Code: CodeValidation, Message: strings.Join(msgs, "; ")}
}
