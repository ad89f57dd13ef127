package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/usecase"
)

type AgentManager interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, input usecase.CreateAgentInput) (*entity.User, error)
	Update(ctx context.Context, id string, input usecase.UpdateAgentInput) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}

type AgentHandler struct {
	Agents AgentManager
}

func NewAgentHandler(agents AgentManager) *AgentHandler {
	return &AgentHandler{Agents: agents}
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Agents.List(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	agent, err := h.Agents.Create(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	agent, err := h.Agents.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Agents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Agent removed"})
}
