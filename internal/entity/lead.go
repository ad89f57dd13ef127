package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is a contact row that survived normalization and was assigned to an agent.
// Leads are never mutated after creation.
type Lead struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	Phone     string    `json:"phone"` // exactly 10 digits
	Notes     string    `json:"notes"`
	AgentID   string    `json:"agentId"`
	BatchID   string    `json:"batchId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeadWithAgent is a Lead joined with the owning agent's contact data.
type LeadWithAgent struct {
	Lead
	AgentName  string `json:"agentName"`
	AgentEmail string `json:"agentEmail"`
}

func NewLead(firstName, phone, notes, agentID, batchID string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		FirstName: firstName,
		Phone:     phone,
		Notes:     notes,
		AgentID:   agentID,
		BatchID:   batchID,
		CreatedAt: time.Now(),
	}
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]LeadWithAgent, error)
	FindByAgentID(ctx context.Context, agentID string) ([]Lead, error)
}
