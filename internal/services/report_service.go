package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/tealeg/xlsx"

	"masjid-admin/internal/models"
	"masjid-admin/internal/timeutil"
)

// ReportService renders printable receipts and ledger exports from
// snapshots fetched from the backend.
type ReportService struct {
	orgName string
}

func NewReportService(orgName string) *ReportService {
	return &ReportService{orgName: orgName}
}

// ReceiptPDF renders a single payment receipt.
func (s *ReportService) ReceiptPDF(p models.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(128, 10, s.orgName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(128, 6, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(128, 8, fmt.Sprintf("Receipt No: %s", p.ReceiptNumber), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	row := func(label, value string) {
		pdf.CellFormat(45, 7, label, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(83, 7, value, "RB", 1, "L", false, 0, "")
	}
	row("Date", timeutil.FormatIST(p.PaymentDate.Time, timeutil.DisplayLayout))
	row("Member", p.MemberName)
	row("Account Number", p.MemberAccountNumber)
	row("Payment Type", p.TypeLabel())
	if p.HasMonth() {
		row("For Month", *p.MonthYear)
	}
	row("Payment Method", p.PaymentMethod)
	if p.HasTransaction() {
		row("Transaction ID", *p.TransactionID)
	}
	row("Status", p.Status)

	pdf.Ln(4)
	pdf.SetFillColor(200, 255, 200)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(128, 10, fmt.Sprintf("Amount Received: Rs. %s", p.Amount.StringFixed(2)), "1", 1, "C", true, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(128, 5, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt %s: %w", p.ReceiptNumber, err)
	}
	return buf.Bytes(), nil
}

// LedgerXLSX renders the payment ledger, one row per payment, in the order given.
func (s *ReportService) LedgerXLSX(payments []models.Payment) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		return nil, fmt.Errorf("failed to add ledger sheet: %w", err)
	}

	// Header row
	row := sheet.AddRow()
	for _, title := range []string{"Receipt", "Date", "Member", "Account Number", "Type", "Month", "Transaction ID", "Amount", "Method", "Status"} {
		row.AddCell().SetValue(title)
	}

	// Data rows
	for _, p := range payments {
		row = sheet.AddRow()
		row.AddCell().SetValue(p.ReceiptNumber)
		row.AddCell().SetValue(timeutil.FormatIST(p.PaymentDate.Time, timeutil.DisplayLayout))
		row.AddCell().SetValue(p.MemberName)
		row.AddCell().SetValue(p.MemberAccountNumber)
		row.AddCell().SetValue(p.TypeLabel())
		row.AddCell().SetValue(optional(p.MonthYear))
		row.AddCell().SetValue(optional(p.TransactionID))
		row.AddCell().SetFloat(p.Amount.InexactFloat64())
		row.AddCell().SetValue(p.PaymentMethod)
		row.AddCell().SetValue(p.Status)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write ledger workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
