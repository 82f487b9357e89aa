// Package excel exports a computed loan analysis as an XLSX workbook: the
// amortization table on one sheet and the maturity classification on another.
package excel

import (
	"fmt"

	"github.com/Gms006/emprestimos/pkg/datetime"
	"github.com/Gms006/emprestimos/pkg/loan"
	"github.com/Gms006/emprestimos/pkg/maturity"
	"github.com/xuri/excelize/v2"
)

const (
	scheduleSheet       = "Amortização"
	classificationSheet = "Classificação"
)

// ScheduleXLSX renders the schedule and its classification as workbook bytes.
func ScheduleXLSX(terms loan.Terms, schedule []loan.Entry, classification maturity.Classification) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "github.com/Gms006/emprestimos",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	writeScheduleSheet(xlsx, sheet, schedule)
	_ = xlsx.SetSheetName(sheet, scheduleSheet)

	if _, err := xlsx.NewSheet(classificationSheet); err != nil {
		return nil, fmt.Errorf("failed to create classification sheet: %w", err)
	}
	writeClassificationSheet(xlsx, classificationSheet, terms, classification)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeScheduleSheet(xlsx *excelize.File, sheet string, schedule []loan.Entry) {
	// Set column widths
	_ = xlsx.SetColWidth(sheet, "A", "A", 8)
	_ = xlsx.SetColWidth(sheet, "B", "B", 12)
	_ = xlsx.SetColWidth(sheet, "C", "F", 15)

	headers := []string{"Parcela", "Data", "Prestação", "Juros", "Amortização", "Saldo Devedor"}
	for i, header := range headers {
		_ = xlsx.SetCellValue(sheet, cell(rune('A'+i), 1), header)
	}
	styleHeader, _ := xlsx.NewStyle(headerStyle())
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('F', 1), styleHeader)

	styleMoney, _ := xlsx.NewStyle(currencyStyle())
	row := 2
	for _, entry := range schedule {
		_ = xlsx.SetCellInt(sheet, cell('A', row), entry.Period)
		_ = xlsx.SetCellValue(sheet, cell('B', row), entry.DueDate.Format(datetime.DateLayout))
		_ = xlsx.SetCellValue(sheet, cell('C', row), entry.Payment)
		_ = xlsx.SetCellValue(sheet, cell('D', row), entry.Interest)
		_ = xlsx.SetCellValue(sheet, cell('E', row), entry.Principal)
		_ = xlsx.SetCellValue(sheet, cell('F', row), entry.RemainingBalance)
		_ = xlsx.SetCellStyle(sheet, cell('C', row), cell('F', row), styleMoney)
		row++
	}
}

func writeClassificationSheet(xlsx *excelize.File, sheet string, terms loan.Terms, c maturity.Classification) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 45)
	_ = xlsx.SetColWidth(sheet, "B", "B", 18)

	styleHeader, _ := xlsx.NewStyle(headerStyle())
	styleMoney, _ := xlsx.NewStyle(currencyStyle())

	_ = xlsx.SetCellValue(sheet, cell('A', 1), "Classificação Contábil")
	_ = xlsx.SetCellValue(sheet, cell('B', 1), "Valor")
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('B', 1), styleHeader)

	_ = xlsx.SetCellValue(sheet, cell('A', 2), "Data limite (base + 12 meses)")
	_ = xlsx.SetCellValue(sheet, cell('B', 2), c.CutoffDate.Format(datetime.DateLayout))

	rows := []struct {
		label string
		value float64
	}{
		{"Principal", terms.Principal},
		{"Amortização - Curto Prazo (Passivo Circulante)", c.CurrentPrincipal},
		{"Juros - Curto Prazo", c.CurrentInterest},
		{"Amortização - Longo Prazo (Passivo Não Circulante)", c.NonCurrentPrincipal},
		{"Juros - Longo Prazo", c.NonCurrentInterest},
	}
	for i, r := range rows {
		row := i + 3
		_ = xlsx.SetCellValue(sheet, cell('A', row), r.label)
		_ = xlsx.SetCellValue(sheet, cell('B', row), r.value)
		_ = xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), styleMoney)
	}
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func headerStyle() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	}
}

func currencyStyle() *excelize.Style {
	numFmt := "#,##0.00"
	return &excelize.Style{
		CustomNumFmt: &numFmt,
	}
}
