package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	intdb "github.com/ardifx01/aplikasi-driver-sub000/internal/db"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentSelect = `
	SELECT id,
	       COALESCE(booking_id, 0),
	       COALESCE(user_id, 0),
	       COALESCE(amount, 0),
	       COALESCE(method, ''),
	       COALESCE(status, ''),
	       COALESCE(proof_file, ''),
	       COALESCE(proof_file_name, ''),
	       COALESCE(notes, ''),
	       COALESCE(DATE_FORMAT(due_date, '%Y-%m-%d'), ''),
	       COALESCE(DATE_FORMAT(paid_at, '%Y-%m-%d %H:%i:%s'), ''),
	       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
	FROM payments
`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.UserID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.ProofFile,
		&p.ProofFileName,
		&p.Notes,
		&p.DueDate,
		&p.PaidAt,
		&p.CreatedAt,
	); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(paymentSelect+` WHERE id = ? LIMIT 1`, id)
	return scanPayment(row)
}

func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(paymentSelect+` WHERE booking_id = ? ORDER BY id DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r PaymentRepository) ListByUser(userID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(paymentSelect+` WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows *sql.Rows) ([]models.Payment, error) {
	list := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CreateTx inserts the payment row within the caller's transaction.
// due_date dan paid_at boleh kosong: pending menunggu due date, paid_at baru
// diisi saat pembayaran benar-benar dianggap lunas.
func (r PaymentRepository) CreateTx(tx *sql.Tx, p models.Payment) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO payments
		(booking_id, user_id, amount, method, status, proof_file,
		 proof_file_name, notes, due_date, paid_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		p.BookingID,
		p.UserID,
		p.Amount,
		p.Method,
		p.Status,
		intdb.NullIfEmpty(p.ProofFile),
		intdb.NullIfEmpty(p.ProofFileName),
		intdb.NullIfEmpty(p.Notes),
		intdb.NullIfEmpty(p.DueDate),
		intdb.NullIfEmpty(p.PaidAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetForUpdateTx locks the columns relevant to an admin decision.
func (r PaymentRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Payment, error) {
	var p models.Payment
	err := tx.QueryRow(`
		SELECT id, COALESCE(booking_id,0), COALESCE(user_id,0),
		       COALESCE(amount,0), COALESCE(status,'')
		FROM payments
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.Status)
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// MarkPaid finalizes an accepted payment and stamps paid_at. Status guard
// supaya payment yang sudah ditolak tidak bisa jadi paid.
func (r PaymentRepository) MarkPaid(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`
		UPDATE payments
		SET status = 'paid', paid_at = NOW()
		WHERE id = ? AND status IN ('pending','overdue')
	`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RejectTx invalidates a pending proof within the caller's transaction.
// Guard status = 'pending' menahan reject ganda pada baris yang sama.
func (r PaymentRepository) RejectTx(tx *sql.Tx, id int64, notes string) error {
	res, err := tx.Exec(`
		UPDATE payments
		SET status = 'rejected', notes = ?
		WHERE id = ? AND status = 'pending'
	`, notes, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkOverdue flips pending payments whose due date has passed.
// Dipanggil dari cron job, bukan per screen.
func (r PaymentRepository) MarkOverdue(today string) (int64, error) {
	if !intdb.HasColumn(r.db(), "payments", "due_date") {
		return 0, nil
	}
	res, err := r.db().Exec(`
		UPDATE payments
		SET status = 'overdue'
		WHERE status = 'pending'
		  AND due_date IS NOT NULL
		  AND due_date < ?
	`, today)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	return n, nil
}
