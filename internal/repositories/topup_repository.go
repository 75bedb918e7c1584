package repositories

import (
	"database/sql"
	"fmt"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
)

type TopupRepository struct {
	DB *sql.DB
}

func (r TopupRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const topupSelect = `
	SELECT id,
	       COALESCE(user_id, 0),
	       COALESCE(amount, 0),
	       COALESCE(bank_name, ''),
	       COALESCE(account_name, ''),
	       COALESCE(reference_code, ''),
	       COALESCE(proof_file, ''),
	       COALESCE(proof_file_name, ''),
	       COALESCE(status, ''),
	       COALESCE(notes, ''),
	       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), ''),
	       COALESCE(DATE_FORMAT(verified_at, '%Y-%m-%d %H:%i:%s'), '')
	FROM topup_requests
`

func scanTopup(row interface{ Scan(...any) error }) (models.TopupRequest, error) {
	var t models.TopupRequest
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Amount,
		&t.BankName,
		&t.AccountName,
		&t.ReferenceCode,
		&t.ProofFile,
		&t.ProofFileName,
		&t.Status,
		&t.Notes,
		&t.CreatedAt,
		&t.VerifiedAt,
	); err != nil {
		return models.TopupRequest{}, err
	}
	return t, nil
}

func (r TopupRepository) Create(t models.TopupRequest) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO topup_requests
		(user_id, amount, bank_name, account_name, reference_code,
		 proof_file, proof_file_name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'pending', NOW())
	`,
		t.UserID,
		t.Amount,
		t.BankName,
		t.AccountName,
		t.ReferenceCode,
		t.ProofFile,
		t.ProofFileName,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TopupRepository) GetByID(id int64) (models.TopupRequest, error) {
	if id <= 0 {
		return models.TopupRequest{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(topupSelect+` WHERE id = ? LIMIT 1`, id)
	return scanTopup(row)
}

func (r TopupRepository) ListByUser(userID int64) ([]models.TopupRequest, error) {
	rows, err := r.db().Query(topupSelect+` WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.TopupRequest{}
	for rows.Next() {
		t, err := scanTopup(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetForUpdateTx locks a top-up row for the verify/reject transition.
func (r TopupRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.TopupRequest, error) {
	var t models.TopupRequest
	err := tx.QueryRow(`
		SELECT id, COALESCE(user_id,0), COALESCE(amount,0), COALESCE(status,'')
		FROM topup_requests
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&t.ID, &t.UserID, &t.Amount, &t.Status)
	if err != nil {
		return models.TopupRequest{}, err
	}
	return t, nil
}

// SetStatusTx finalizes a top-up inside the caller's transaction.
func (r TopupRepository) SetStatusTx(tx *sql.Tx, id int64, status, notes string) error {
	_, err := tx.Exec(`
		UPDATE topup_requests
		SET status = ?, notes = ?, verified_at = NOW()
		WHERE id = ?
	`, status, notes, id)
	return err
}

// ExpireStale marks pending requests older than the cutoff as expired.
func (r TopupRepository) ExpireStale(cutoff string) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE topup_requests
		SET status = 'expired'
		WHERE status = 'pending'
		  AND created_at < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
