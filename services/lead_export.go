package services

import (
	"bytes"
	"fmt"
	"strings"

	"streamgrowth_app_go/models"

	"github.com/xuri/excelize/v2"
)

var leadExportHeaders = []string{
	"Created At", "Name", "Email", "Twitch Username", "Current Followers",
	"Plan", "Goals", "Message", "Payment Confirmation", "Status", "Failure Reason",
}

// ExportLeadRecords writes the records to a workbook with a single sheet named after models.SheetName
func ExportLeadRecords(records []models.LeadRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := models.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &leadExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"7C3AED"}, Pattern: 1},
	})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(leadExportHeaders))
		f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
	}

	for i, r := range records {
		row := []interface{}{
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			r.Name,
			r.Email,
			r.TwitchUsername,
			r.CurrentFollowers,
			r.Plan,
			strings.Join(r.Goals, ", "),
			r.Message,
			r.AttachmentURL,
			r.Status,
			r.FailureReason,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cell for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "D", 24)
	f.SetColWidth(sheet, "G", "I", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
