package tabular

import (
	"io"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
)

const (
	leadsSheet   = "Leads"
	summarySheet = "Summary"
)

var leadsHeader = []any{"FirstName", "Phone", "Notes", "Agent", "Agent Email"}

// WriteLeadsWorkbook writes leads as an .xlsx workbook: one "Leads" sheet using
// the same column names uploads accept, and a "Summary" sheet counting leads
// per agent.
func WriteLeadsWorkbook(w io.Writer, leads []entity.LeadWithAgent) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadsSheet); err != nil {
		return eris.Wrap(err, "export: rename sheet")
	}
	if err := f.SetSheetRow(leadsSheet, "A1", &leadsHeader); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	counts := make(map[string]int)
	names := make(map[string]string)
	for i, l := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return eris.Wrap(err, "export: cell name")
		}
		row := []any{l.FirstName, l.Phone, l.Notes, l.AgentName, l.AgentEmail}
		if err := f.SetSheetRow(leadsSheet, cell, &row); err != nil {
			return eris.Wrapf(err, "export: write lead %s", l.ID)
		}
		counts[l.AgentID]++
		names[l.AgentID] = l.AgentName
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	summaryHeader := []any{"Agent", "Leads"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return eris.Wrap(err, "export: write summary header")
	}

	agentIDs := make([]string, 0, len(counts))
	for id := range counts {
		agentIDs = append(agentIDs, id)
	}
	sort.Slice(agentIDs, func(i, j int) bool { return names[agentIDs[i]] < names[agentIDs[j]] })

	for i, id := range agentIDs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return eris.Wrap(err, "export: cell name")
		}
		row := []any{names[id], counts[id]}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return eris.Wrap(err, "export: write summary row")
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}
