package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	intdb "github.com/ardifx01/aplikasi-driver-sub000/internal/db"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmailOrUsername loads a user plus the stored password hash.
func (r UserRepository) GetByEmailOrUsername(identity string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1
	`, identity, identity).Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Phone,
		&hash,
		&u.Role,
		&u.Status,
	)
	if err != nil {
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, role, status
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepository) CountByEmailOrUsername(email, username string) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
	`, email, username).Scan(&n)
	return n, err
}

func (r UserRepository) Create(name, username, email, phone, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, saldo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'driver', 'active', 0, NOW(), NOW())
	`, name, username, email, phone, passwordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSaldo is the single balance lookup: row di tabel drivers dipakai lebih
// dulu, kalau tidak ada fallback ke kolom saldo di users.
func (r UserRepository) GetSaldo(userID int64) (models.Saldo, error) {
	if userID <= 0 {
		return models.Saldo{}, fmt.Errorf("user_id tidak valid")
	}

	var balance int64
	if intdb.HasTable(r.db(), "drivers") {
		err := r.db().QueryRow(`
			SELECT COALESCE(saldo, 0) FROM drivers WHERE user_id = ? LIMIT 1
		`, userID).Scan(&balance)
		if err == nil {
			return models.Saldo{UserID: userID, Balance: balance, Source: "drivers"}, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return models.Saldo{}, err
		}
	}

	err := r.db().QueryRow(`
		SELECT COALESCE(saldo, 0) FROM users WHERE id = ? LIMIT 1
	`, userID).Scan(&balance)
	if err != nil {
		return models.Saldo{}, err
	}
	return models.Saldo{UserID: userID, Balance: balance, Source: "users"}, nil
}

// AddSaldoTx credits the balance in the caller's transaction, mengikuti
// aturan fallback yang sama dengan GetSaldo.
func (r UserRepository) AddSaldoTx(tx *sql.Tx, userID, amount int64) error {
	if intdb.HasTable(tx, "drivers") {
		res, err := tx.Exec(`UPDATE drivers SET saldo = COALESCE(saldo,0) + ? WHERE user_id = ?`, amount, userID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}
	}
	_, err := tx.Exec(`UPDATE users SET saldo = COALESCE(saldo,0) + ? WHERE id = ?`, amount, userID)
	return err
}
