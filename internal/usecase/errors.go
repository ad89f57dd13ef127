package usecase

import "github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"

const (
	CodeNoAgentsAvailable      = "NO_AGENTS_AVAILABLE"
	CodeUnsupportedFileType    = "UNSUPPORTED_FILE_TYPE"
	CodeParseFailure           = "PARSE_FAILURE"
	CodeMissingRequiredColumns = "MISSING_REQUIRED_COLUMNS"
	CodeEmptyResultSet         = "EMPTY_RESULT_SET"
	CodePersistenceFailure     = "PERSISTENCE_FAILURE"

	CodeValidation         = "VALIDATION_ERROR"
	CodeEmailTaken         = "EMAIL_ALREADY_REGISTERED"
	CodeNotFound           = "NOT_FOUND"
	CodeNotAgent           = "NOT_AN_AGENT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeDatabase           = "DATABASE_ERROR"
)

// DomainError is a rejection the caller can act on. Sample carries the first
// parsed row when an upload fails the header gate.
type DomainError struct {
	Code    string
	Message string
	Sample  tabular.Row
}

func (e *DomainError) Error() string {
	return e.Message
}

// TechnicalError is an internal failure. Message is safe to show; Err keeps the cause.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }
