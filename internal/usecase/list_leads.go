package usecase

import (
	"context"
	"io"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
)

type ListLeadsUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(leads entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads}
}

func (uc *ListLeadsUseCase) All(ctx context.Context) ([]entity.LeadWithAgent, error) {
	leads, err := uc.Leads.FindAll(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error fetching lists", Err: err}
	}
	if leads == nil {
		leads = []entity.LeadWithAgent{}
	}
	return leads, nil
}

func (uc *ListLeadsUseCase) ByAgent(ctx context.Context, agentID string) ([]entity.Lead, error) {
	leads, err := uc.Leads.FindByAgentID(ctx, agentID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error fetching agent lists", Err: err}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}

// Export writes every lead as an XLSX workbook to w.
func (uc *ListLeadsUseCase) Export(ctx context.Context, w io.Writer) error {
	leads, err := uc.All(ctx)
	if err != nil {
		return err
	}
	if err := tabular.WriteLeadsWorkbook(w, leads); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "Error exporting lists", Err: err}
	}
	return nil
}
