package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const footerNote = "Final pay is strictly proportional to completion: each employee's base salary is " +
	"multiplied by the share of assigned tasks completed within the reporting period. " +
	"No floor is applied and pay never exceeds base salary."

// Filename follows <Label>_<start>_<end>.<ext> with ISO dates.
func Filename(label string, start, end time.Time, ext string) string {
	if label == "" {
		label = DefaultLabel
	}
	return fmt.Sprintf("%s_%s_%s.%s", label, start.Format("2006-01-02"), end.Format("2006-01-02"), ext)
}

// RenderPDF serializes an already-computed report. It never recomputes, so a
// render failure leaves the in-memory report valid and redisplayable.
func RenderPDF(rep *Report, generatedBy string, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Performance Payroll Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		rep.StartDate.Format("2006-01-02"), rep.EndDate.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated by %s at %s",
		generatedBy, generatedAt.UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Executive summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	summaryRows := []struct {
		label string
		value string
	}{
		{"Total employees", strconv.Itoa(rep.Summary.EmployeeCount)},
		{"Total tasks assigned", strconv.Itoa(rep.Summary.TotalTasks)},
		{"Total tasks completed", strconv.Itoa(rep.Summary.TotalCompleted)},
		{"Total payroll", formatMoney(rep.Summary.TotalPayroll)},
	}
	for _, item := range summaryRows {
		pdf.CellFormat(60, 7, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, item.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	if len(rep.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "No employees in scope for this period.")
	} else {
		writeDetailTable(pdf, rep.Rows)
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, footerNote, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDetailTable(pdf *gofpdf.Fpdf, rows []Row) {
	headers := []string{"Name", "Department", "Tasks", "Completed", "Completion", "Base salary", "Final pay"}
	widths := []float64{42, 30, 15, 20, 21, 31, 31}

	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(widths[0], 7, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, strconv.Itoa(row.Total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, strconv.Itoa(row.Completed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, formatPercent(row.Efficiency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, formatMoney(row.BaseSalary), "1", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(widths[6], 7, formatMoney(row.FinalSalary), "1", 1, "R", false, 0, "")
	}
}

func formatPercent(value float64) string {
	return strconv.Itoa(int(math.Round(value))) + "%"
}
