package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
)

func vehicleColumns() []string {
	return []string{
		"id", "vehicle_code", "name", "plate_number", "category", "color",
		"seats", "daily_price", "driver_fee", "available", "image_url",
	}
}

func vehicleRow(id int64, dailyPrice, driverFee int64, available int) *sqlmock.Rows {
	return sqlmock.NewRows(vehicleColumns()).
		AddRow(id, "AVZ-01", "Avanza", "B 1234 CD", "mpv", "hitam", 7, dailyPrice, driverFee, available, "")
}

func TestCreateBookingComputesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM vehicles").WithArgs(int64(7)).
		WillReturnRows(vehicleRow(7, 100_000, 50_000, 1))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
	}

	got, err := svc.CreateBooking(3, CreateBookingInput{
		VehicleID: 7,
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}

	if got.ID != 42 {
		t.Fatalf("booking id = %d, want 42", got.ID)
	}
	if got.Duration != 2 {
		t.Fatalf("duration = %d, want 2", got.Duration)
	}
	if got.TotalAmount != 200_000 {
		t.Fatalf("total = %d, want 200000", got.TotalAmount)
	}
	if got.PaidAmount != 0 || got.RemainingPayment != 200_000 {
		t.Fatalf("paid=%d remaining=%d, want 0/200000", got.PaidAmount, got.RemainingPayment)
	}
	if got.Status != domain.BookingPending || got.PaymentStatus != domain.PaymentPending {
		t.Fatalf("status=%s payment_status=%s, keduanya harus pending", got.Status, got.PaymentStatus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingWithDriverAddsFee(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM vehicles").WithArgs(int64(7)).
		WillReturnRows(vehicleRow(7, 100_000, 50_000, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	got, err := svc.CreateBooking(3, CreateBookingInput{
		VehicleID:  7,
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-03",
		WithDriver: true,
	})
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	// 2 hari x (100.000 + fee sopir 50.000)
	if got.TotalAmount != 300_000 {
		t.Fatalf("total = %d, want 300000", got.TotalAmount)
	}
}

func TestCreateBookingBlocksSecondActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM vehicles").WithArgs(int64(7)).
		WillReturnRows(vehicleRow(7, 100_000, 0, 1))

	// sudah ada booking aktif, transaksi harus rollback tanpa insert
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectRollback()

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	_, err = svc.CreateBooking(3, CreateBookingInput{
		VehicleID: 7,
		StartDate: "2025-06-01",
		EndDate:   "2025-06-02",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, harus conflict", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsUnavailableVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM vehicles").WithArgs(int64(7)).
		WillReturnRows(vehicleRow(7, 100_000, 0, 0))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	_, err = svc.CreateBooking(3, CreateBookingInput{
		VehicleID: 7,
		StartDate: "2025-06-01",
		EndDate:   "2025-06-02",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, harus conflict", err)
	}
}

func TestCreateBookingValidatesDates(t *testing.T) {
	svc := BookingService{}

	_, err := svc.CreateBooking(3, CreateBookingInput{
		VehicleID: 7,
		StartDate: "01-06-2025",
		EndDate:   "2025-06-02",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("format tanggal salah: err = %v", err)
	}

	_, err = svc.CreateBooking(3, CreateBookingInput{
		VehicleID: 7,
		StartDate: "2025-06-05",
		EndDate:   "2025-06-01",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("tanggal kembali sebelum ambil: err = %v", err)
	}
}

func TestCreateBookingRequiresSession(t *testing.T) {
	svc := BookingService{}

	_, err := svc.CreateBooking(0, CreateBookingInput{
		VehicleID: 7,
		StartDate: "2025-06-01",
		EndDate:   "2025-06-02",
	})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("user id kosong: err = %v, harus unauthorized", err)
	}
}

func TestHistoryDerivesOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{
		"id", "user_id", "vehicle_id", "name", "plate_number", "start_date",
		"end_date", "with_driver", "duration", "daily_price", "driver_fee",
		"status", "total_amount", "paid_amount", "remaining_payment",
		"payment_status", "created_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow(1, 3, 7, "Avanza", "B 1234 CD", "2025-06-01", "2025-06-03",
			0, 2, 100_000, 0, "approved", 200_000, 50_000, 150_000, "pending",
			"2025-06-01 08:00:00").
		AddRow(2, 3, 8, "Xenia", "B 5678 EF", "2025-05-01", "2025-05-02",
			0, 1, 80_000, 0, "approved", 80_000, 80_000, 0, "paid",
			"2025-05-01 08:00:00")
	mock.ExpectQuery("FROM bookings").WithArgs(int64(3)).WillReturnRows(rows)

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
		Now: func() time.Time {
			return time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)
		},
	}

	list, err := svc.History(3)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	// booking pertama telat 3 hari dari 2025-06-03
	if list[0].OverdueDays != 3 {
		t.Fatalf("overdue days = %d, want 3", list[0].OverdueDays)
	}
	if list[0].OverdueAmount != 300_000 {
		t.Fatalf("overdue amount = %d, want 300000 (tarif harian x hari)", list[0].OverdueAmount)
	}

	// booking lunas tidak kena denda
	if list[1].OverdueDays != 0 || list[1].OverdueAmount != 0 {
		t.Fatalf("booking lunas kena denda: %+v", list[1])
	}
}

func TestCancelOnlyPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{
		"id", "user_id", "vehicle_id", "name", "plate_number", "start_date",
		"end_date", "with_driver", "duration", "daily_price", "driver_fee",
		"status", "total_amount", "paid_amount", "remaining_payment",
		"payment_status", "created_at",
	}
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 3, 7, "Avanza", "B 1234 CD", "2025-06-01", "2025-06-03",
				0, 2, 100_000, 0, "approved", 200_000, 0, 200_000, "pending",
				"2025-06-01 08:00:00"))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	if err := svc.Cancel(3, 1); !domain.IsConflict(err) {
		t.Fatalf("cancel booking approved: err = %v, harus conflict", err)
	}
}

func bookingRowColumns() []string {
	return []string{
		"id", "user_id", "vehicle_id", "name", "plate_number", "start_date",
		"end_date", "with_driver", "duration", "daily_price", "driver_fee",
		"status", "total_amount", "paid_amount", "remaining_payment",
		"payment_status", "created_at",
	}
}

func TestCompleteRestoresVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(1, 3, 7, "Avanza", "B 1234 CD", "2025-06-01", "2025-06-03",
				0, 2, 100_000, 0, "approved", 200_000, 200_000, 0, "paid",
				"2025-06-01 08:00:00"))
	mock.ExpectExec("UPDATE bookings").
		WithArgs("completed", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// kendaraan kembali masuk katalog
	mock.ExpectExec("UPDATE vehicles").
		WithArgs(1, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	if err := svc.Complete(1); err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteOnlyApproved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(1, 3, 7, "Avanza", "B 1234 CD", "2025-06-01", "2025-06-03",
				0, 2, 100_000, 0, "pending", 200_000, 0, 200_000, "pending",
				"2025-06-01 08:00:00"))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	if err := svc.Complete(1); !domain.IsConflict(err) {
		t.Fatalf("complete booking pending: err = %v, harus conflict", err)
	}
}
