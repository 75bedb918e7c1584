package services

import (
	"context"
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

// TopupService menangani permintaan isi saldo via transfer bank.
type TopupService struct {
	TopupRepo repositories.TopupRepository
	UserRepo  repositories.UserRepository
	Store     storage.LocalStore
	DB        *sql.DB
	RequestID string
	Now       func() time.Time

	// PollInterval is how often WaitForStatus re-reads the row. Default 5s.
	PollInterval time.Duration
}

func (s TopupService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TopupService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateTopupInput is the top-up form payload.
type CreateTopupInput struct {
	Amount        int64  `json:"amount"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	ProofFile     string `json:"proofFile"`     // base64/data-url
	ProofFileName string `json:"proofFileName"` // nama file bukti
}

// CreateTopup stores the proof, generates a reference code, and inserts a
// pending request for admin verification.
func (s TopupService) CreateTopup(userID int64, in CreateTopupInput) (models.TopupRequest, error) {
	if userID <= 0 {
		return models.TopupRequest{}, domain.UnauthorizedError{Msg: "sesi tidak valid"}
	}
	if in.Amount <= 0 {
		return models.TopupRequest{}, domain.ValidationError{Field: "amount", Msg: "jumlah top-up harus lebih dari 0"}
	}
	if strings.TrimSpace(in.BankName) == "" || strings.TrimSpace(in.AccountName) == "" {
		return models.TopupRequest{}, domain.ValidationError{Field: "bank", Msg: "nama bank dan pemilik rekening wajib diisi"}
	}
	if strings.TrimSpace(in.ProofFile) == "" {
		return models.TopupRequest{}, domain.ValidationError{Field: "proofFile", Msg: "bukti transfer wajib diisi"}
	}

	proofName := strings.TrimSpace(in.ProofFileName)
	if proofName == "" {
		proofName = "bukti-transfer"
	}
	stored := utils.NewProofFilename(proofName)
	path, err := s.Store.SaveDataURL(stored, in.ProofFile)
	if err != nil {
		return models.TopupRequest{}, domain.ValidationError{Field: "proofFile", Msg: err.Error()}
	}

	topup := models.TopupRequest{
		UserID:        userID,
		Amount:        in.Amount,
		BankName:      strings.TrimSpace(in.BankName),
		AccountName:   strings.TrimSpace(in.AccountName),
		ReferenceCode: utils.NewReferenceCode("TOP", s.now()),
		ProofFile:     path,
		ProofFileName: proofName,
		Status:        domain.TopupPending,
	}

	id, err := s.TopupRepo.Create(topup)
	if err != nil {
		return models.TopupRequest{}, domain.InternalError{Err: err}
	}
	topup.ID = id

	logger.Event(s.RequestID, "topup", "create",
		"top-up "+utils.FormatRupiah(in.Amount)+" ref "+topup.ReferenceCode)
	return topup, nil
}

// Get returns one top-up scoped to its owner unless admin.
func (s TopupService) Get(userID, topupID int64, isAdmin bool) (models.TopupRequest, error) {
	t, err := s.TopupRepo.GetByID(topupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TopupRequest{}, domain.NotFoundError{Resource: "top-up", Err: err}
		}
		return models.TopupRequest{}, domain.InternalError{Err: err}
	}
	if !isAdmin && t.UserID != userID {
		return models.TopupRequest{}, domain.NotFoundError{Resource: "top-up"}
	}
	return t, nil
}

func (s TopupService) List(userID int64) ([]models.TopupRequest, error) {
	list, err := s.TopupRepo.ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// WaitForStatus re-reads the request every PollInterval until it reaches a
// terminal status or ctx expires, lalu mengembalikan status terakhir.
// Pengganti polling 5 detik di browser; batas kerasnya tetap ctx.
func (s TopupService) WaitForStatus(ctx context.Context, userID, topupID int64) (models.TopupRequest, error) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	t, err := s.Get(userID, topupID, false)
	if err != nil {
		return models.TopupRequest{}, err
	}
	if domain.IsTerminalTopup(t.Status) {
		return t, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return t, nil
		case <-ticker.C:
			t, err = s.Get(userID, topupID, false)
			if err != nil {
				return models.TopupRequest{}, err
			}
			if domain.IsTerminalTopup(t.Status) {
				return t, nil
			}
		}
	}
}

// Verify credits the saldo and finalizes the request in one transaction.
func (s TopupService) Verify(topupID int64, notes string) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	t, err := s.TopupRepo.GetForUpdateTx(tx, topupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "top-up", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if domain.IsTerminalTopup(t.Status) {
		return domain.ConflictError{Resource: "top-up", Msg: "permintaan sudah diproses"}
	}

	if err := s.UserRepo.AddSaldoTx(tx, t.UserID, t.Amount); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.TopupRepo.SetStatusTx(tx, topupID, domain.TopupVerified, strings.TrimSpace(notes)); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	logger.Event(s.RequestID, "topup", "verify", "saldo bertambah "+utils.FormatRupiah(t.Amount))
	return nil
}

// Reject finalizes the request without touching the saldo.
func (s TopupService) Reject(topupID int64, notes string) error {
	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	t, err := s.TopupRepo.GetForUpdateTx(tx, topupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "top-up", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if domain.IsTerminalTopup(t.Status) {
		return domain.ConflictError{Resource: "top-up", Msg: "permintaan sudah diproses"}
	}

	if err := s.TopupRepo.SetStatusTx(tx, topupID, domain.TopupRejected, strings.TrimSpace(notes)); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	logger.Event(s.RequestID, "topup", "reject", "permintaan top-up ditolak")
	return nil
}

// Saldo returns the consolidated balance for the user.
func (s TopupService) Saldo(userID int64) (models.Saldo, error) {
	saldo, err := s.UserRepo.GetSaldo(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Saldo{}, domain.NotFoundError{Resource: "saldo", Err: err}
		}
		return models.Saldo{}, domain.InternalError{Err: err}
	}
	return saldo, nil
}
