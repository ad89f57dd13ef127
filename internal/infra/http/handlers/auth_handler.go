package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/http/middleware"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/usecase"
)

type Authenticator interface {
	Execute(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
}

type AuthHandler struct {
	Login Authenticator
}

func NewAuthHandler(login Authenticator) *AuthHandler {
	return &AuthHandler{Login: login}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.Login.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// HandleMe returns the admin resolved by the auth middleware.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
