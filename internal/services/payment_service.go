package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/logger"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/storage"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/utils"
)

// PaymentService menangani pembayaran booking: penuh maupun cicilan.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	Store       storage.LocalStore
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SubmitPaymentInput is the payment form payload.
type SubmitPaymentInput struct {
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`                  // transfer / qris / cash
	ProofFile     string `json:"proofFile,omitempty"`     // base64/data-url
	ProofFileName string `json:"proofFileName,omitempty"` // nama file bukti
	Notes         string `json:"notes,omitempty"`
}

// SubmitPayment records a payment and reconciles the booking in ONE
// transaction: insert payments + update paid_amount/remaining_payment/
// payment_status tidak pernah terpisah, jadi kedua tabel selalu konsisten.
func (s PaymentService) SubmitPayment(userID, bookingID int64, in SubmitPaymentInput) (models.Payment, error) {
	if bookingID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	method := strings.ToLower(strings.TrimSpace(in.Method))
	if method != "transfer" && method != "qris" && method != "cash" {
		return models.Payment{}, domain.ValidationError{Field: "method", Msg: "method harus 'transfer', 'qris', atau 'cash'"}
	}
	if (method == "transfer" || method == "qris") && strings.TrimSpace(in.ProofFile) == "" {
		return models.Payment{}, domain.ValidationError{Field: "proofFile", Msg: "bukti transfer wajib diisi"}
	}

	proofName := strings.TrimSpace(in.ProofFileName)
	proofPath := ""
	if strings.TrimSpace(in.ProofFile) != "" {
		if proofName == "" {
			proofName = "bukti-pembayaran"
		}
		stored := utils.NewProofFilename(proofName)
		path, err := s.Store.SaveDataURL(stored, in.ProofFile)
		if err != nil {
			return models.Payment{}, domain.ValidationError{Field: "proofFile", Msg: err.Error()}
		}
		proofPath = path
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	booking, err := s.BookingRepo.GetForUpdateTx(tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	if booking.UserID != userID {
		return models.Payment{}, domain.NotFoundError{Resource: "booking"}
	}
	if booking.Status == domain.BookingCancelled || booking.Status == domain.BookingRejected {
		return models.Payment{}, domain.ConflictError{Resource: "booking", Msg: "booking sudah tidak aktif"}
	}

	state, err := domain.ApplyPayment(booking.TotalAmount, booking.PaidAmount, in.Amount)
	if err != nil {
		return models.Payment{}, err
	}

	payment := models.Payment{
		BookingID:     bookingID,
		UserID:        userID,
		Amount:        in.Amount,
		Method:        method,
		Status:        domain.PaymentPending,
		ProofFile:     proofPath,
		ProofFileName: proofName,
		Notes:         strings.TrimSpace(in.Notes),
	}
	// cash dianggap lunas langsung, tanpa validasi admin
	if method == "cash" {
		payment.Status = domain.PaymentPaid
		payment.PaidAt = utils.FormatDateTime(s.now())
	}
	// sisa tagihan jatuh tempo di tanggal kembali; sweep harian yang
	// menandai overdue membaca kolom ini
	if state.RemainingPayment > 0 && booking.EndDate != "" {
		payment.DueDate = booking.EndDate
	}

	id, err := s.PaymentRepo.CreateTx(tx, payment)
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	if err := s.BookingRepo.ApplyPaymentTx(tx, bookingID, state.PaidAmount, state.RemainingPayment, state.PaymentStatus); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	payment.ID = id
	logger.Event(s.RequestID, "payment", "submit",
		"pembayaran "+utils.FormatRupiah(in.Amount)+", sisa "+utils.FormatRupiah(state.RemainingPayment))
	return payment, nil
}

// Track lists the user's payments for the tracking screen.
func (s PaymentService) Track(userID int64) ([]models.Payment, error) {
	list, err := s.PaymentRepo.ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// Approve marks a submitted proof as valid and stamps paid_at.
func (s PaymentService) Approve(paymentID int64) error {
	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "payment", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if p.Status == domain.PaymentPaid {
		return nil // idempotent
	}
	if p.Status == domain.PaymentRejected {
		return domain.ConflictError{Resource: "payment", Msg: "bukti sudah ditolak"}
	}
	if err := s.PaymentRepo.MarkPaid(paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ConflictError{Resource: "payment", Msg: "payment sudah diproses"}
		}
		return domain.InternalError{Err: err}
	}
	logger.Event(s.RequestID, "payment", "approve", "bukti pembayaran diterima")
	return nil
}

// Reject invalidates a submitted proof and reverses its effect on the
// booking in the same transaction, jadi invariant paid+remaining==total
// tetap terjaga.
func (s PaymentService) Reject(paymentID int64, notes string) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	// baca di dalam transaksi yang sama; FOR UPDATE menahan reject ganda
	// atau reject yang balapan dengan approve
	p, err := s.PaymentRepo.GetForUpdateTx(tx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "payment", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if p.Status != domain.PaymentPending {
		return domain.ConflictError{Resource: "payment", Msg: "payment sudah diproses"}
	}

	booking, err := s.BookingRepo.GetForUpdateTx(tx, p.BookingID)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	newPaid := booking.PaidAmount - p.Amount
	if newPaid < 0 {
		newPaid = 0
	}
	remaining := booking.TotalAmount - newPaid
	status := domain.PaymentPending

	if err := s.PaymentRepo.RejectTx(tx, paymentID, strings.TrimSpace(notes)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ConflictError{Resource: "payment", Msg: "payment sudah diproses"}
		}
		return domain.InternalError{Err: err}
	}
	if err := s.BookingRepo.ApplyPaymentTx(tx, p.BookingID, newPaid, remaining, status); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	logger.Event(s.RequestID, "payment", "reject", "bukti pembayaran ditolak, saldo booking dikembalikan")
	return nil
}
