package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingColumns() []string {
	return []string{
		"id", "user_id", "vehicle_id", "name", "plate_number", "start_date",
		"end_date", "with_driver", "duration", "daily_price", "driver_fee",
		"status", "total_amount", "paid_amount", "remaining_payment",
		"payment_status", "created_at",
	}
}

func TestBookingGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingColumns()).
			AddRow(1, 3, 7, "Avanza", "B 1234 CD", "2025-06-01", "2025-06-03",
				1, 2, 100_000, 50_000, "pending", 300_000, 0, 300_000, "pending",
				"2025-06-01 08:00:00"))

	repo := BookingRepository{DB: db}
	b, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !b.WithDriver {
		t.Fatal("with_driver tidak ter-scan")
	}
	if b.VehicleName != "Avanza" || b.PlateNumber != "B 1234 CD" {
		t.Fatalf("join vehicles salah: %q %q", b.VehicleName, b.PlateNumber)
	}
	if b.TotalAmount != 300_000 || b.RemainingPayment != 300_000 {
		t.Fatalf("nominal salah: total=%d remaining=%d", b.TotalAmount, b.RemainingPayment)
	}

	if _, err := repo.GetByID(0); err == nil {
		t.Fatal("id 0 harus error")
	}
}

func TestHasActiveBookingTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM bookings").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := BookingRepository{DB: db}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	active, err := repo.HasActiveBookingTx(tx, 3)
	if err != nil {
		t.Fatalf("HasActiveBookingTx error: %v", err)
	}
	if !active {
		t.Fatal("user 3 punya booking aktif")
	}

	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	active, err = repo.HasActiveBookingTx(tx2, 4)
	if err != nil {
		t.Fatalf("HasActiveBookingTx error: %v", err)
	}
	if active {
		t.Fatal("user 4 tidak punya booking aktif")
	}
}
