package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/domain/job"
	"github.com/honeycarbs/jobs-client/pkg/logging"
)

// SheetsClient writes rows to a spreadsheet
type SheetsClient interface {
	Export(ctx context.Context, params SheetsExportParams) (SheetsExportResult, error)
}

// SheetRow defines a row to upsert into Sheets
type SheetRow struct {
	Title      string `json:"title,omitempty" jsonschema:"Job title text"`
	Company    string `json:"company,omitempty" jsonschema:"Company name"`
	Location   string `json:"location,omitempty" jsonschema:"Location text"`
	City       string `json:"city,omitempty" jsonschema:"Parsed city"`
	State      string `json:"state,omitempty" jsonschema:"Parsed state"`
	PostalCode string `json:"postal_code,omitempty" jsonschema:"Parsed postal code"`
	URL        string `json:"url,omitempty" jsonschema:"Application URL"`
	Source     string `json:"source,omitempty" jsonschema:"Provider the job came from"`
	Status     string `json:"status,omitempty" jsonschema:"Pipeline status e.g. applied/interviewing"`
	Notes      string `json:"notes,omitempty" jsonschema:"Free-form notes or instructions"`
	UpdatedAt  string `json:"updated_at,omitempty" jsonschema:"ISO timestamp captured by client"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	JobIDs   []string   `json:"job_ids,omitempty" jsonschema:"Jobs to rehydrate from storage"`
	Rows     []SheetRow `json:"rows,omitempty" jsonschema:"Explicit rows to write when not rehydrating"`
	Upsert   bool       `json:"upsert,omitempty" jsonschema:"Whether to upsert (true) or append (false)"`
	ClearTab bool       `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Sheet    struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name to upsert data"`
		Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	Mode          string    `json:"mode" jsonschema:"append or upsert"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	client SheetsClient
	finder job.Finder
	logger *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(client SheetsClient, finder job.Finder) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{client: client, finder: finder, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export explicit rows or stored jobs to Google Sheets",
		}, handler.handle)
		reg.add("sheets_export")
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Sheet.SpreadsheetID == "" {
		return textResult("[sheets_export] sheet.spreadsheet_id is required"), nil, fmt.Errorf("spreadsheet_id is required")
	}
	if t.client == nil {
		return nil, nil, fmt.Errorf("sheets client not configured")
	}

	if len(params.JobIDs) > 0 {
		rows, err := t.rehydrate(ctx, params.JobIDs)
		if err != nil {
			t.logger.Error("sheets_export: rehydrate failed", "err", err, "job_ids", params.JobIDs)
			return nil, nil, err
		}
		params.Rows = append(params.Rows, rows...)
	}

	t.logger.Info("sheets_export request",
		"spreadsheet_id", params.Sheet.SpreadsheetID,
		"tab", params.Sheet.Tab,
		"rows", len(params.Rows),
		"upsert", params.Upsert,
	)

	result, err := t.client.Export(ctx, params)
	if err != nil {
		t.logger.Error("sheets_export: export failed", "err", err)
		return nil, nil, fmt.Errorf("sheets export failed: %w", err)
	}
	result.Mode = exportMode(params.Upsert)

	msg := fmt.Sprintf("[sheets_export] mode=%s spreadsheet_id=%q tab=%q rows=%d: %s",
		result.Mode, result.SpreadsheetID, result.Tab, result.WrittenRows, result.Message)
	return textResult(msg), result, nil
}

func (t sheetsExportTool) rehydrate(ctx context.Context, rawIDs []string) ([]SheetRow, error) {
	if t.finder == nil {
		return nil, fmt.Errorf("job repository not configured")
	}

	ids := make([]domain.JobID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid job id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	jobs, err := t.finder.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}

	rows := make([]SheetRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, RowFromJob(j))
	}
	return rows, nil
}

// RowFromJob converts a stored job into a sheet row
func RowFromJob(j domain.Job) SheetRow {
	row := SheetRow{
		Title:      j.Title,
		Company:    j.Company.Name,
		Location:   j.Location,
		City:       j.City,
		State:      j.State,
		PostalCode: j.PostalCode,
		URL:        j.URL,
		Source:     j.Source,
	}
	if !j.FetchedAt.IsZero() {
		row.UpdatedAt = j.FetchedAt.UTC().Format(time.RFC3339)
	}
	return row
}

func exportMode(upsert bool) string {
	if upsert {
		return "upsert"
	}
	return "append"
}
