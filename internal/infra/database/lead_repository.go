package database

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

type LeadRepository struct {
	DB Pool
}

func NewLeadRepository(db Pool) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, first_name, phone, notes, agent_id, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.Exec(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.Phone,
		lead.Notes,
		lead.AgentID,
		lead.BatchID,
		lead.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "leads: create %s", lead.ID)
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id); err != nil {
		return eris.Wrapf(err, "leads: delete %s", id)
	}
	return nil
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.LeadWithAgent, error) {
	query := `
		SELECT l.id, l.first_name, l.phone, l.notes, l.agent_id, l.batch_id, l.created_at,
		       u.name, u.email
		FROM leads l
		JOIN users u ON u.id = l.agent_id
		ORDER BY l.created_at, l.id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "leads: find all")
	}
	defer rows.Close()

	var leads []entity.LeadWithAgent
	for rows.Next() {
		var l entity.LeadWithAgent
		if err := rows.Scan(
			&l.ID,
			&l.FirstName,
			&l.Phone,
			&l.Notes,
			&l.AgentID,
			&l.BatchID,
			&l.CreatedAt,
			&l.AgentName,
			&l.AgentEmail,
		); err != nil {
			return nil, eris.Wrap(err, "leads: scan")
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "leads: iterate")
	}
	return leads, nil
}

func (r *LeadRepository) FindByAgentID(ctx context.Context, agentID string) ([]entity.Lead, error) {
	query := `
		SELECT id, first_name, phone, notes, agent_id, batch_id, created_at
		FROM leads
		WHERE agent_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.Query(ctx, query, agentID)
	if err != nil {
		return nil, eris.Wrap(err, "leads: find by agent")
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.FirstName, &l.Phone, &l.Notes, &l.AgentID, &l.BatchID, &l.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "leads: scan")
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "leads: iterate")
	}
	return leads, nil
}
