package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
)

const defaultPayslipDir = "storage/payslips"

// WithPayslipDir overrides where PayslipPDF writes its files.
func (s *Service) WithPayslipDir(dir string) *Service {
	s.payslipDir = dir
	return s
}

// PayslipPDF renders an existing payslip to a PDF on disk and returns the
// file path. Access follows GetPayslip: employees only get their own.
func (s *Service) PayslipPDF(ctx context.Context, who actor.Actor, payslipID string) (string, error) {
	payslip, err := s.GetPayslip(ctx, who, payslipID)
	if err != nil {
		return "", err
	}

	dir := s.payslipDir
	if dir == "" {
		dir = defaultPayslipDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, payslip.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", payslip.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", payslip.Month))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", payslip.Gross))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", payslip.Deductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", payslip.Net))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
