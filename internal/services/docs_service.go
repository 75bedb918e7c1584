package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/logger"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/utils"
)

// DocsService menghasilkan PDF invoice booking & kwitansi pembayaran.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string

	// Loader overrides DB lookups in tests.
	Loader func(bookingID int64) (models.Booking, []models.Payment, error)
}

func (s DocsService) load(bookingID int64) (models.Booking, []models.Payment, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, nil, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, nil, domain.InternalError{Err: err}
	}
	payments, err := s.PaymentRepo.ListByBooking(bookingID)
	if err != nil {
		return models.Booking{}, nil, domain.InternalError{Err: err}
	}
	return b, payments, nil
}

// GenerateInvoice builds the booking invoice PDF.
func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	b, _, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	logger.Event(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(b)
}

// GenerateReceipt builds the payment receipt (kwitansi) PDF.
func (s DocsService) GenerateReceipt(bookingID int64) ([]byte, string, error) {
	b, payments, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	logger.Event(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(b, payments)
}

func buildInvoicePDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE SEWA KENDARAAN")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%s", b.ID, strings.ReplaceAll(b.StartDate, "-", ""))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice  : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)

	driverLine := "tanpa sopir"
	if b.WithDriver {
		driverLine = "dengan sopir"
	}
	desc := fmt.Sprintf("Sewa %s (%s), %s s/d %s, %d hari, %s",
		safe(b.VehicleName, "kendaraan"), safe(b.PlateNumber, "-"),
		b.StartDate, b.EndDate, b.Duration, driverLine,
	)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Harga harian : "+utils.FormatRupiah(b.DailyPrice))
	pdf.Ln(6)
	if b.WithDriver {
		pdf.Cell(0, 6, "Fee sopir    : "+utils.FormatRupiah(b.DriverFee)+" / hari")
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(b.TotalAmount))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Sudah dibayar : "+utils.FormatRupiah(b.PaidAmount))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Sisa          : "+utils.FormatRupiah(b.RemainingPayment))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Invoice ini dibuat otomatis oleh sistem.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(b models.Booking, payments []models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Kwitansi", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KWITANSI PEMBAYARAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking : #%d", b.ID),
		fmt.Sprintf("Kendaraan    : %s (%s)", safe(b.VehicleName, "-"), safe(b.PlateNumber, "-")),
		fmt.Sprintf("Periode      : %s s/d %s (%d hari)", b.StartDate, b.EndDate, b.Duration),
		fmt.Sprintf("Total        : %s", utils.FormatRupiah(b.TotalAmount)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Riwayat pembayaran:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	if len(payments) == 0 {
		pdf.Cell(0, 6, "Belum ada pembayaran.")
		pdf.Ln(6)
	}
	for i, p := range payments {
		line := fmt.Sprintf("%d) %s - %s via %s (%s)",
			i+1, safe(p.CreatedAt, "-"), utils.FormatRupiah(p.Amount),
			safe(p.Method, "-"), safe(p.Status, "-"))
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Terbayar: "+utils.FormatRupiah(b.PaidAmount)+"  |  Sisa: "+utils.FormatRupiah(b.RemainingPayment))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Simpan kwitansi ini sebagai bukti pembayaran yang sah.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("KWITANSI_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
