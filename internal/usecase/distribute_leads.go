package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/queue"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

const (
	msgNoAgents        = "No agents found for distribution"
	msgMissingColumns  = "File must contain 'FirstName' and 'Phone' columns"
	msgNoValidItems    = "No valid items found in file"
	msgDistributed     = "Items distributed successfully"
	msgProcessingError = "Error processing file"
)

// DistributeLeadsUseCase parses an uploaded file and spreads its valid rows
// over the current agent roster. Publisher may be nil.
type DistributeLeadsUseCase struct {
	Roster            AgentRoster
	Leads             LeadWriter
	Publisher         AssignmentPublisher
	RollbackOnFailure bool
}

func NewDistributeLeadsUseCase(roster AgentRoster, leads LeadWriter, publisher AssignmentPublisher, rollbackOnFailure bool) *DistributeLeadsUseCase {
	return &DistributeLeadsUseCase{
		Roster:            roster,
		Leads:             leads,
		Publisher:         publisher,
		RollbackOnFailure: rollbackOnFailure,
	}
}

func (uc *DistributeLeadsUseCase) Execute(ctx context.Context, input DistributeLeadsInput) (*DistributeLeadsOutput, error) {
	format, err := tabular.FormatFromFilename(input.FileName)
	if err != nil {
		return nil, &DomainError{Code: CodeUnsupportedFileType, Message: err.Error()}
	}

	// The roster is read before the file so an empty roster never costs a parse.
	roster, err := uc.Roster.FindAgents(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: msgProcessingError, Err: err}
	}
	if len(roster) == 0 {
		return nil, &DomainError{Code: CodeNoAgentsAvailable, Message: msgNoAgents}
	}

	rows, err := tabular.ReadAll(ctx, input.Content, format)
	if err != nil {
		return nil, &TechnicalError{Code: CodeParseFailure, Message: msgProcessingError, Err: err}
	}
	if len(rows) == 0 {
		return nil, &DomainError{Code: CodeEmptyResultSet, Message: msgNoValidItems}
	}
	if !HasRequiredHeaders(rows[0]) {
		return nil, &DomainError{Code: CodeMissingRequiredColumns, Message: msgMissingColumns, Sample: rows[0]}
	}

	assignments, stats, err := PlanDistribution(rows, roster)
	if errors.Is(err, ErrNoAgents) {
		return nil, &DomainError{Code: CodeNoAgentsAvailable, Message: msgNoAgents}
	}
	if stats.Accepted == 0 {
		return nil, &DomainError{Code: CodeEmptyResultSet, Message: msgNoValidItems}
	}

	// Once writes start the batch runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	batchID := uuid.New().String()
	leads, err := uc.persist(ctx, batchID, assignments)
	if err != nil {
		return nil, &TechnicalError{Code: CodePersistenceFailure, Message: msgProcessingError, Err: err}
	}

	perAgent := make(map[string]int, len(roster))
	for _, lead := range leads {
		perAgent[lead.AgentID]++
	}

	zap.L().Info("leads distributed",
		zap.String("batch_id", batchID),
		zap.String("file", input.FileName),
		zap.Int("received", stats.Received),
		zap.Int("accepted", stats.Accepted),
		zap.Int("rejected", stats.Rejected),
		zap.Int("agents", len(roster)),
	)

	uc.notify(ctx, batchID, input.FileName, roster, perAgent)

	return &DistributeLeadsOutput{
		Message:  msgDistributed,
		Items:    leads,
		Total:    len(leads),
		BatchID:  batchID,
		Stats:    stats,
		PerAgent: perAgent,
	}, nil
}

// persist writes one lead per assignment, in order. Leads written before a
// failure stay committed unless RollbackOnFailure is set.
func (uc *DistributeLeadsUseCase) persist(ctx context.Context, batchID string, assignments []Assignment) ([]*entity.Lead, error) {
	leads := make([]*entity.Lead, len(assignments))
	tx := NewTransaction()

	for i, a := range assignments {
		lead := entity.NewLead(a.Row.FirstName, a.Row.Phone, a.Row.Notes, a.Agent.ID, batchID)
		leads[i] = lead

		var compensate func(context.Context) error
		if uc.RollbackOnFailure {
			compensate = func(ctx context.Context) error {
				return uc.Leads.Delete(ctx, lead.ID)
			}
		}
		tx.AddOperation("create_lead", func(ctx context.Context) error {
			return uc.Leads.Create(ctx, lead)
		}, compensate)
	}

	completed, err := tx.Execute(ctx)
	if err != nil {
		zap.L().Error("lead persistence failed",
			zap.String("batch_id", batchID),
			zap.Int("written", completed),
			zap.Int("total", len(assignments)),
			zap.Bool("rolled_back", uc.RollbackOnFailure),
			zap.Error(err),
		)
		return nil, err
	}
	return leads, nil
}

// notify publishes one assignment message per agent that received leads.
// Failures are logged and never fail the upload.
func (uc *DistributeLeadsUseCase) notify(ctx context.Context, batchID, fileName string, roster []entity.User, perAgent map[string]int) {
	if uc.Publisher == nil {
		return
	}

	assignedAt := time.Now().UTC()
	for _, agent := range roster {
		count := perAgent[agent.ID]
		if count == 0 {
			continue
		}
		payload := queue.AssignmentPayload{
			BatchID:    batchID,
			AgentID:    agent.ID,
			AgentName:  agent.Name,
			AgentEmail: agent.Email,
			LeadCount:  count,
			FileName:   fileName,
			AssignedAt: assignedAt,
		}
		if err := uc.Publisher.PublishAssignment(ctx, payload); err != nil {
			zap.L().Warn("failed to publish assignment",
				zap.String("batch_id", batchID),
				zap.String("agent_id", agent.ID),
				zap.Error(err),
			)
		}
	}
}
