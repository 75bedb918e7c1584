package services

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/storage"
)

func bookingLockColumns() []string {
	return []string{
		"id", "user_id", "vehicle_id", "end_date", "status",
		"total_amount", "paid_amount", "remaining_payment", "payment_status",
	}
}

func TestSubmitPaymentPartialReconcilesBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingLockColumns()).
			AddRow(1, 3, 7, "2025-06-10", "approved", 200_000, 0, 200_000, "pending"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(50_000), int64(150_000), "pending", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2025, 6, 5, 10, 0, 0, 0, time.Local) },
	}

	got, err := svc.SubmitPayment(3, 1, SubmitPaymentInput{
		Amount: 50_000,
		Method: "cash",
	})
	if err != nil {
		t.Fatalf("SubmitPayment error: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("payment id = %d, want 11", got.ID)
	}
	// cash langsung lunas tanpa validasi admin
	if got.Status != domain.PaymentPaid {
		t.Fatalf("cash status = %s, want paid", got.Status)
	}
	if got.PaidAt != "2025-06-05 10:00:00" {
		t.Fatalf("cash paid_at = %q, want stempel waktu sekarang", got.PaidAt)
	}
	// sisa tagihan jatuh tempo di tanggal kembali
	if got.DueDate != "2025-06-10" {
		t.Fatalf("due_date = %q, want tanggal kembali booking", got.DueDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitPaymentFullMarksPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingLockColumns()).
			AddRow(1, 3, 7, "2025-06-10", "approved", 200_000, 50_000, 150_000, "pending"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(200_000), int64(0), "paid", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	got, err := svc.SubmitPayment(3, 1, SubmitPaymentInput{Amount: 150_000, Method: "cash"})
	if err != nil {
		t.Fatalf("SubmitPayment error: %v", err)
	}
	// lunas, tidak ada jatuh tempo yang tersisa
	if got.DueDate != "" {
		t.Fatalf("due_date = %q, want kosong untuk pelunasan", got.DueDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitPaymentRejectsOverpayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingLockColumns()).
			AddRow(1, 3, 7, "2025-06-10", "approved", 200_000, 150_000, 50_000, "pending"))
	mock.ExpectRollback()

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	_, err = svc.SubmitPayment(3, 1, SubmitPaymentInput{Amount: 100_000, Method: "cash"})
	if !domain.IsValidation(err) {
		t.Fatalf("overpayment: err = %v, harus validation", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitPaymentTransferNeedsProof(t *testing.T) {
	svc := PaymentService{}

	_, err := svc.SubmitPayment(3, 1, SubmitPaymentInput{Amount: 50_000, Method: "transfer"})
	if !domain.IsValidation(err) {
		t.Fatalf("transfer tanpa bukti: err = %v, harus validation", err)
	}

	_, err = svc.SubmitPayment(3, 1, SubmitPaymentInput{Amount: 50_000, Method: "wire"})
	if !domain.IsValidation(err) {
		t.Fatalf("method tidak dikenal: err = %v, harus validation", err)
	}
}

func TestSubmitPaymentTransferStoresProof(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingLockColumns()).
			AddRow(1, 3, 7, "2025-06-10", "approved", 200_000, 0, 200_000, "pending"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		Store:       storage.LocalStore{Dir: t.TempDir()},
		DB:          db,
	}

	proof := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("bukti"))
	got, err := svc.SubmitPayment(3, 1, SubmitPaymentInput{
		Amount:        50_000,
		Method:        "transfer",
		ProofFile:     proof,
		ProofFileName: "bukti.png",
	})
	if err != nil {
		t.Fatalf("SubmitPayment error: %v", err)
	}
	if got.ProofFile == "" || !strings.HasSuffix(got.ProofFile, ".png") {
		t.Fatalf("bukti tidak tersimpan: %q", got.ProofFile)
	}
	// transfer menunggu verifikasi admin
	if got.Status != domain.PaymentPending {
		t.Fatalf("transfer status = %s, want pending", got.Status)
	}
}

func paymentColumns() []string {
	return []string{
		"id", "booking_id", "user_id", "amount", "method", "status",
		"proof_file", "proof_file_name", "notes", "due_date", "paid_at", "created_at",
	}
}

func paymentLockColumns() []string {
	return []string{"id", "booking_id", "user_id", "amount", "status"}
}

func TestRejectPaymentReversesBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentLockColumns()).
			AddRow(11, 1, 3, 50_000, "pending"))
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingLockColumns()).
			AddRow(1, 3, 7, "2025-06-10", "approved", 200_000, 50_000, 150_000, "pending"))
	mock.ExpectExec("UPDATE payments").
		WithArgs("bukti buram", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(0), int64(200_000), "pending", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	if err := svc.Reject(11, "bukti buram"); err != nil {
		t.Fatalf("Reject error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRejectPaymentAlreadyProcessed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// sudah paid, tidak boleh dibalik lagi
	mock.ExpectBegin()
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentLockColumns()).
			AddRow(11, 1, 3, 50_000, "paid"))
	mock.ExpectRollback()

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	err = svc.Reject(11, "bukti buram")
	if !domain.IsConflict(err) {
		t.Fatalf("reject payment paid: err = %v, harus conflict", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApprovePaymentIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// sudah paid, tidak ada update kedua
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 1, 3, 50_000, "transfer", "paid", "x.png", "bukti.png",
				"", "", "2025-06-01 09:00:00", "2025-06-01 09:00:00"))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
	}
	if err := svc.Approve(11); err != nil {
		t.Fatalf("Approve error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApprovePaymentStampsPaidAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 1, 3, 50_000, "transfer", "pending", "x.png", "bukti.png",
				"", "", "", "2025-06-01 09:00:00"))
	mock.ExpectExec("UPDATE payments").
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
	}
	if err := svc.Approve(11); err != nil {
		t.Fatalf("Approve error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApprovePaymentRejectedProof(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 1, 3, 50_000, "transfer", "rejected", "x.png", "bukti.png",
				"buram", "", "", "2025-06-01 09:00:00"))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
	}
	err = svc.Approve(11)
	if !domain.IsConflict(err) {
		t.Fatalf("approve bukti rejected: err = %v, harus conflict", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
