package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingSelect = `
	SELECT b.id,
	       b.user_id,
	       b.vehicle_id,
	       COALESCE(v.name, ''),
	       COALESCE(v.plate_number, ''),
	       COALESCE(b.start_date, ''),
	       COALESCE(b.end_date, ''),
	       COALESCE(b.with_driver, 0),
	       COALESCE(b.duration, 0),
	       COALESCE(b.daily_price, 0),
	       COALESCE(b.driver_fee, 0),
	       COALESCE(b.status, ''),
	       COALESCE(b.total_amount, 0),
	       COALESCE(b.paid_amount, 0),
	       COALESCE(b.remaining_payment, 0),
	       COALESCE(b.payment_status, ''),
	       COALESCE(DATE_FORMAT(b.created_at, '%Y-%m-%d %H:%i:%s'), '')
	FROM bookings b
	LEFT JOIN vehicles v ON v.id = b.vehicle_id
`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var withDriver int
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.VehicleID,
		&b.VehicleName,
		&b.PlateNumber,
		&b.StartDate,
		&b.EndDate,
		&withDriver,
		&b.Duration,
		&b.DailyPrice,
		&b.DriverFee,
		&b.Status,
		&b.TotalAmount,
		&b.PaidAmount,
		&b.RemainingPayment,
		&b.PaymentStatus,
		&b.CreatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.WithDriver = withDriver != 0
	return b, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(bookingSelect+` WHERE b.id = ? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(bookingSelect+` WHERE b.user_id = ? ORDER BY b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r BookingRepository) ListAll(status string) ([]models.Booking, error) {
	query := bookingSelect
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += ` WHERE b.status = ?`
		args = append(args, s)
	}
	query += ` ORDER BY b.id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// HasActiveBookingTx checks the single-active-booking rule inside the
// caller's transaction. FOR UPDATE menahan insert balapan dari request lain.
func (r BookingRepository) HasActiveBookingTx(tx *sql.Tx, userID int64) (bool, error) {
	var id int64
	err := tx.QueryRow(`
		SELECT id FROM bookings
		WHERE user_id = ? AND status IN ('pending','approved')
		LIMIT 1
		FOR UPDATE
	`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateTx inserts the booking row within the caller's transaction.
func (r BookingRepository) CreateTx(tx *sql.Tx, b models.Booking) (int64, error) {
	withDriver := 0
	if b.WithDriver {
		withDriver = 1
	}
	res, err := tx.Exec(`
		INSERT INTO bookings
		(user_id, vehicle_id, start_date, end_date, with_driver, duration,
		 daily_price, driver_fee, status, total_amount, paid_amount,
		 remaining_payment, payment_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, NOW())
	`,
		b.UserID,
		b.VehicleID,
		b.StartDate,
		b.EndDate,
		withDriver,
		b.Duration,
		b.DailyPrice,
		b.DriverFee,
		b.Status,
		b.TotalAmount,
		b.TotalAmount, // remaining_payment starts at the full total
		b.PaymentStatus,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus sets booking status (approve/reject/cancel/complete).
func (r BookingRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?
	`, strings.TrimSpace(status), id)
	return err
}

// GetForUpdateTx locks and returns the payment-relevant booking columns.
func (r BookingRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Booking, error) {
	var b models.Booking
	err := tx.QueryRow(`
		SELECT id, user_id, vehicle_id,
		       COALESCE(end_date,''),
		       COALESCE(status,''),
		       COALESCE(total_amount,0),
		       COALESCE(paid_amount,0),
		       COALESCE(remaining_payment,0),
		       COALESCE(payment_status,'')
		FROM bookings
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(
		&b.ID,
		&b.UserID,
		&b.VehicleID,
		&b.EndDate,
		&b.Status,
		&b.TotalAmount,
		&b.PaidAmount,
		&b.RemainingPayment,
		&b.PaymentStatus,
	)
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// ApplyPaymentTx writes the reconciled amounts in the caller's transaction,
// bersama insert payment supaya kedua tabel tidak pernah selisih.
func (r BookingRepository) ApplyPaymentTx(tx *sql.Tx, id int64, paid, remaining int64, paymentStatus string) error {
	_, err := tx.Exec(`
		UPDATE bookings
		SET paid_amount = ?, remaining_payment = ?, payment_status = ?, updated_at = NOW()
		WHERE id = ?
	`, paid, remaining, paymentStatus, id)
	return err
}
