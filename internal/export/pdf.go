// Package export формирует выгрузки отчётов.
package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/view"
)

// ErrNoReport возвращается при попытке выгрузить пустой отчёт.
var ErrNoReport = errors.New("no report to export")

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Code", 30, "L"},
	{"Customer", 45, "L"},
	{"Service", 40, "L"},
	{"Total", 37, "R"},
	{"Paid", 37, "R"},
}

// Filename возвращает имя файла выгрузки.
func Filename(r *model.Report) string {
	return fmt.Sprintf("report-%s-%s.pdf", r.Period, r.Date)
}

// ReportPDF рисует отчёт на странице A4: заголовок, итоги и строки отчёта.
func ReportPDF(r *model.Report, outlet string) ([]byte, error) {
	if r == nil {
		return nil, ErrNoReport
	}
	if outlet == "" {
		outlet = "All outlets"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laundry report "+r.Date, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Laundry Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s    Date: %s    Outlet: %s", r.Period, r.Date, outlet))
	pdf.Ln(10)

	stats := r.Statistics
	pdf.SetFont("Arial", "B", 11)
	for _, line := range [][2]string{
		{"Total items", fmt.Sprintf("%d", stats.TotalItems)},
		{"Total revenue", view.Rupiah(stats.TotalRevenue)},
		{"Total paid", view.Rupiah(stats.TotalPaid)},
		{"Outstanding", view.Rupiah(stats.Outstanding)},
	} {
		pdf.CellFormat(50, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(r.Items) == 0 {
		pdf.CellFormat(189, 8, "No data for this period", "1", 1, "C", false, 0, "")
	}
	for _, it := range r.Items {
		cells := []string{it.Code, it.CustomerName, it.Service, view.Rupiah(it.TotalPrice), view.Rupiah(it.PaidAmount)}
		for i, c := range columns {
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
