package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/usecase"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Sample  tabular.Row `json:"sample,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

var domainStatus = map[string]int{
	usecase.CodeNotFound:           http.StatusNotFound,
	usecase.CodeInvalidCredentials: http.StatusUnauthorized,
	usecase.CodeForbidden:          http.StatusForbidden,
}

// writeUseCaseError maps use case errors to HTTP responses. Domain errors are
// 400 unless listed in domainStatus; everything else is a 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status, ok := domainStatus[de.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, ErrorResponse{Message: de.Message, Sample: de.Sample})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		zap.L().Error(te.Message, zap.String("code", te.Code), zap.Error(te.Err))
		resp := ErrorResponse{Message: te.Message}
		if te.Err != nil {
			resp.Error = te.Err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	zap.L().Error("unhandled error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal server error", Error: err.Error()})
}

// errorCode returns the code carried by a use case error.
func errorCode(err error) string {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return "UNKNOWN"
}
