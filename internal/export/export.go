package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"bilancio/internal/core"
)

// Format selects the report output encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	PDF  Format = "pdf"
)

// ParseFormat maps a user-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	case PDF:
		return PDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ContentType returns the MIME type for HTTP downloads of this format.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv"
	case PDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Report is the exportable snapshot of a budget: the stored entities plus
// every derived metric, fixed at generation time.
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Budget      core.Budget  `json:"budget"`
	Summary     core.Summary `json:"summary"`
}

// NewReport snapshots the budget and its computed metrics.
func NewReport(b core.Budget, now time.Time) Report {
	return Report{
		GeneratedAt: now,
		Budget:      b,
		Summary:     b.Summarize(),
	}
}

// Write renders the report in the requested format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case CSV:
		return WriteCSV(w, r)
	case JSON:
		return WriteJSON(w, r)
	case PDF:
		return WritePDF(w, r)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

// WriteFile renders the report into dir under a timestamped name and
// returns the absolute path of the file it created.
func WriteFile(dir string, format Format, r Report) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(r, format))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := Write(file, format, r); err != nil {
		return "", err
	}

	return filepath.Abs(path)
}

// Filename builds the canonical report name, stamped with the report's
// generation time: budget_<id prefix>_<timestamp>.<ext>.
func Filename(r Report, format Format) string {
	return fmt.Sprintf("budget_%s_%s.%s",
		shortID(r.Budget), r.GeneratedAt.Format("20060102_150405"), format)
}

func shortID(b core.Budget) string {
	id := b.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// WriteCSV renders the report as sectioned CSV: budget header, expenses,
// incomes, accounts, pay groups, then the computed summary.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Budget", r.Budget.ID.String()},
		{"Generated At", r.GeneratedAt.Format(time.RFC3339)},
		{"Created At", r.Budget.CreatedAt.Format(time.RFC3339)},
		{"Last Saved At", r.Budget.LastSavedAt.Format(time.RFC3339)},
		{"Annual Salary", r.Budget.AnnualSalary.StringFixed(2)},
		{},
		{"Expenses"},
		{"Bill", "Paid To", "Paid By", "Amount", "Due Day"},
	}
	for _, e := range r.Budget.Expenses {
		records = append(records, []string{
			e.BillName, e.PaidTo, e.PaidBy, e.Amount.StringFixed(2), fmt.Sprintf("%d", e.DueDay),
		})
	}

	records = append(records, []string{}, []string{"Incomes"}, []string{"Employer", "Type", "Amount"})
	for _, in := range r.Budget.Incomes {
		records = append(records, []string{in.Employer, in.Type, in.Amount.StringFixed(2)})
	}

	records = append(records, []string{}, []string{"Accounts"}, []string{"Name", "Kind", "Notes"})
	for _, a := range r.Summary.Accounts {
		records = append(records, []string{a.Name, string(a.Kind), a.Notes})
	}

	records = append(records, []string{}, []string{"Pay Groups"}, []string{"Paid By", "Total"})
	for _, g := range r.Summary.PayGroups {
		records = append(records, []string{g.PaidBy, g.Total.StringFixed(2)})
	}

	records = append(records, []string{}, []string{"Summary"}, []string{"Metric", "Value"})
	records = append(records,
		[]string{"Total Monthly Expenses", r.Summary.TotalMonthlyExpenses.StringFixed(2)},
		[]string{"Total Yearly Expenses", r.Summary.TotalYearlyExpenses.StringFixed(2)},
		[]string{"Total Monthly Incomes", r.Summary.TotalMonthlyIncomes.StringFixed(2)},
		[]string{"Total Yearly Incomes", r.Summary.TotalYearlyIncomes.StringFixed(2)},
		[]string{"Debt To Income Ratio", r.Summary.DebtToIncomeRatio.StringFixed(4)},
		[]string{"Yearly Withholdings", r.Summary.YearlyWithholdings.StringFixed(2)},
		[]string{"Half Monthly Expenses", r.Summary.HalfMonthlyExpenses.StringFixed(2)},
	)

	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	return nil
}

// WritePDF renders the report as a single-page A4 document with the same
// sections as the CSV output.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Budget Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Budget ID: %s", r.Budget.ID)), "", 1, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04"))), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Annual Salary: %s\n", r.Budget.AnnualSalary.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Total Monthly Expenses: %s\n", r.Summary.TotalMonthlyExpenses.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Total Yearly Expenses: %s\n", r.Summary.TotalYearlyExpenses.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Total Monthly Incomes: %s\n", r.Summary.TotalMonthlyIncomes.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Total Yearly Incomes: %s\n", r.Summary.TotalYearlyIncomes.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Debt To Income Ratio: %s\n", r.Summary.DebtToIncomeRatio.StringFixed(4)))
	summary.WriteString(fmt.Sprintf("Yearly Withholdings: %s\n", r.Summary.YearlyWithholdings.StringFixed(2)))
	summary.WriteString(fmt.Sprintf("Half Monthly Expenses: %s\n", r.Summary.HalfMonthlyExpenses.StringFixed(2)))
	drawSection("Summary", summary.String())

	var expenses strings.Builder
	for _, e := range r.Budget.Expenses {
		expenses.WriteString(fmt.Sprintf("%s: %s (to %s, via %s, day %d)\n",
			e.BillName, e.Amount.StringFixed(2), e.PaidTo, e.PaidBy, e.DueDay))
	}
	drawSection("Expenses", expenses.String())

	var incomes strings.Builder
	for _, in := range r.Budget.Incomes {
		incomes.WriteString(fmt.Sprintf("%s (%s): %s\n", in.Employer, in.Type, in.Amount.StringFixed(2)))
	}
	drawSection("Incomes", incomes.String())

	var accounts strings.Builder
	for _, a := range r.Summary.Accounts {
		accounts.WriteString(fmt.Sprintf("%s [%s]\n", a.Name, a.Kind))
	}
	drawSection("Accounts", accounts.String())

	var groups strings.Builder
	for _, g := range r.Summary.PayGroups {
		groups.WriteString(fmt.Sprintf("%s: %s\n", g.PaidBy, g.Total.StringFixed(2)))
	}
	drawSection("Expenses By Account", groups.String())

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("bilancio | %s", r.GeneratedAt.Format("2006-01-02"))), "", 0, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
