// ABOUTME: Report writers for spring search results
// ABOUTME: Renders ranked candidates as XLSX workbooks, PDF summaries, or TSV tables

package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

// reportColumns are the candidate table headers shared by every format
var reportColumns = []string{
	"No", "WD [mm]", "ID [mm]", "OD [mm]", "SN [laps]", "FL [mm]", "SL [mm]",
	"SP [mm]", "SPP [mm]", "SCC [mm]", "K [kgf/mm]", "TFK [kgf]", "TFL [lbf]",
	"PSI [lbf/in^2]", "Score", "Notes",
}

func candidateRow(i int, c models.CandidateSpring, maxScore int) []interface{} {
	return []interface{}{
		i + 1, c.WireDiameter, c.InnerDiameter, c.OuterDiameter, c.CoilCount,
		c.FreeLength, c.SolidLength, c.Preload, c.Pitch, c.StackCheck,
		c.SpringRate, c.TotalForceKgf, c.TotalForceLbf, c.ChipPressurePSI,
		fmt.Sprintf("%d/%d", c.Score, maxScore), strings.Join(c.Reasons, "; "),
	}
}

// inputRows lists the assembly parameters as label/value pairs
func inputRows(in models.AssemblyInput) [][]interface{} {
	return [][]interface{}{
		{"Chip length [mm]", in.ChipLength},
		{"Chip width [mm]", in.ChipWidth},
		{"Screw stroke [mm]", in.ScrewStroke},
		{"Spring room unlock [mm]", in.SpringRoomUnlock},
		{"Screw shaft diameter [mm]", in.ScrewShaftDiameter},
		{"Screw head diameter [mm]", in.ScrewHeadDiameter},
		{"Chip max load [lbf/in^2]", in.ChipMaxPSI},
		{"Screw count", in.ScrewCount},
		{"Results requested", in.ResultCount},
		{"Shear modulus [kgf/mm^2]", in.EffectiveShearModulus()},
	}
}

// WriteXLSX writes a workbook with Summary, Candidates, and Input sheets.
func WriteXLSX(w io.Writer, result models.SearchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Item", "Value"},
		{"Requested", result.Requested},
		{"Returned", result.Returned},
		{"Retained", result.TotalRetained},
		{"Enumerated", result.Stats.Enumerated},
		{"Shortfall", result.Shortfall},
		{"Scoring", string(result.Sweep.Scoring)},
		{"Message", result.Message},
	}
	if err := writeRows(f, summary, summaryRows); err != nil {
		return err
	}

	candidates := "Candidates"
	if _, err := f.NewSheet(candidates); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}
	header := make([]interface{}, len(reportColumns))
	for i, col := range reportColumns {
		header[i] = col
	}
	rows := [][]interface{}{header}
	for i, c := range result.Candidates {
		rows = append(rows, candidateRow(i, c, result.MaxScore))
	}
	if err := writeRows(f, candidates, rows); err != nil {
		return err
	}

	input := "Input"
	if _, err := f.NewSheet(input); err != nil {
		return fmt.Errorf("failed to create input sheet: %w", err)
	}
	if err := writeRows(f, input, append([][]interface{}{{"Parameter", "Value"}}, inputRows(result.Input)...)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// WritePDF writes a one-document summary of the assembly and ranked springs.
func WritePDF(w io.Writer, result models.SearchResult) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Spring Selection Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range inputRows(result.Input) {
		pdf.Cell(0, 5, fmt.Sprintf("%s: %v", row[0], row[1]))
		pdf.Ln(5)
	}
	pdf.Ln(3)
	pdf.Cell(0, 5, fmt.Sprintf("Retained %d of %d enumerated, showing %d of %d requested",
		result.TotalRetained, result.Stats.Enumerated, result.Returned, result.Requested))
	pdf.Ln(8)

	if result.Empty {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, result.Message)
		pdf.Ln(6)
		return pdf.Output(w)
	}

	// Candidate table without the free-text notes column
	cols := reportColumns[:len(reportColumns)-1]
	width := 277.0 / float64(len(cols))
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(220, 220, 220)
	for _, col := range cols {
		pdf.CellFormat(width, 6, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for i, c := range result.Candidates {
		row := candidateRow(i, c, result.MaxScore)
		for _, v := range row[:len(cols)] {
			pdf.CellFormat(width, 5, formatCell(v), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 8)
	for i, c := range result.Candidates {
		if len(c.Reasons) == 0 {
			continue
		}
		pdf.MultiCell(0, 4, fmt.Sprintf("#%d: %s", i+1, strings.Join(c.Reasons, "; ")), "", "L", false)
	}

	return pdf.Output(w)
}

// WriteTSV writes the candidate table as tab-separated values.
func WriteTSV(w io.Writer, result models.SearchResult) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write(reportColumns); err != nil {
		return err
	}
	for i, c := range result.Candidates {
		row := candidateRow(i, c, result.MaxScore)
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = formatCell(v)
		}
		if err := tw.Write(record); err != nil {
			return err
		}
	}

	tw.Flush()
	return tw.Error()
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
