package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"masjid-admin/internal/models"
	"masjid-admin/internal/services"
	"masjid-admin/internal/timeutil"
)

// PaymentLister is the slice of the backend the downloads need.
type PaymentLister interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

type ReportHandler struct {
	api     PaymentLister
	Service *services.ReportService
	clock   timeutil.Clock
}

func NewReportHandler(api PaymentLister, service *services.ReportService, clock timeutil.Clock) *ReportHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ReportHandler{api: api, Service: service, clock: clock}
}

// ReceiptPDF handles GET /payments/receipt/{receipt_number}.pdf
func (h *ReportHandler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	receipt := mux.Vars(r)["receipt_number"]

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	payments, err := h.api.ListPayments(ctx)
	if err != nil {
		log.Error().Err(err).Str("receipt", receipt).Msg("failed to load payments for receipt")
		http.Error(w, "Failed to load payments", http.StatusBadGateway)
		return
	}

	payment, ok := services.PaymentsState{Payments: payments}.FindByReceipt(receipt)
	if !ok {
		http.Error(w, "Receipt not found", http.StatusNotFound)
		return
	}

	pdf, err := h.Service.ReceiptPDF(payment)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", payment.ReceiptNumber)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Write(pdf)
}

// LedgerXLSX handles GET /payments/export.xlsx
func (h *ReportHandler) LedgerXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	payments, err := h.api.ListPayments(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load payments for export")
		http.Error(w, "Failed to load payments", http.StatusBadGateway)
		return
	}

	data, err := h.Service.LedgerXLSX(payments)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate spreadsheet: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", timeutil.FormatIST(h.clock(), "2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
