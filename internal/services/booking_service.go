package services

import (
	"database/sql"
	"strings"
	"time"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/logger"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/utils"
)

type BookingService struct {
	BookingRepo repositories.BookingRepository
	VehicleRepo repositories.VehicleRepository
	PaymentRepo repositories.PaymentRepository
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateBookingInput is the payload from the booking form.
type CreateBookingInput struct {
	VehicleID  int64  `json:"vehicleId"`
	StartDate  string `json:"startDate"` // YYYY-MM-DD
	EndDate    string `json:"endDate"`   // YYYY-MM-DD
	WithDriver bool   `json:"withDriver"`
}

// CreateBooking validates the request, computes duration and total, and
// inserts the booking. Aturan satu-booking-aktif dicek di dalam transaksi
// yang sama dengan insert supaya dua tab tidak bisa saling mendahului.
func (s BookingService) CreateBooking(userID int64, in CreateBookingInput) (models.Booking, error) {
	if userID <= 0 {
		return models.Booking{}, domain.UnauthorizedError{Msg: "sesi tidak valid"}
	}
	if in.VehicleID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "vehicleId", Msg: "id tidak valid"}
	}

	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "startDate", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "endDate", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}
	if end.Before(start) {
		return models.Booking{}, domain.ValidationError{Field: "endDate", Msg: "tanggal kembali harus setelah tanggal ambil"}
	}

	vehicle, err := s.VehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, domain.NotFoundError{Resource: "kendaraan", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !vehicle.Available {
		return models.Booking{}, domain.ConflictError{Resource: "kendaraan", Msg: "kendaraan sedang tidak tersedia"}
	}

	duration := domain.RentalDuration(start, end)
	total := domain.TotalPrice(vehicle.DailyPrice, duration, in.WithDriver, vehicle.DriverFee)

	booking := models.Booking{
		UserID:           userID,
		VehicleID:        vehicle.ID,
		VehicleName:      vehicle.Name,
		PlateNumber:      vehicle.PlateNumber,
		StartDate:        utils.FormatDate(start),
		EndDate:          utils.FormatDate(end),
		WithDriver:       in.WithDriver,
		Duration:         duration,
		DailyPrice:       vehicle.DailyPrice,
		DriverFee:        vehicle.DriverFee,
		Status:           domain.BookingPending,
		TotalAmount:      total,
		PaidAmount:       0,
		RemainingPayment: total,
		PaymentStatus:    domain.PaymentPending,
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	active, err := s.BookingRepo.HasActiveBookingTx(tx, userID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if active {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "masih ada booking aktif, selesaikan dulu sebelum membuat yang baru"}
	}

	id, err := s.BookingRepo.CreateTx(tx, booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	booking.ID = id
	logger.Event(s.RequestID, "booking", "create", "booking dibuat, total "+utils.FormatRupiah(total))
	return booking, nil
}

// History lists the user's bookings with derived duration/remaining/overdue,
// satu perhitungan untuk semua layar.
func (s BookingService) History(userID int64) ([]models.BookingHistoryItem, error) {
	bookings, err := s.BookingRepo.ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	now := s.now()
	out := make([]models.BookingHistoryItem, 0, len(bookings))
	for _, b := range bookings {
		item := models.BookingHistoryItem{Booking: b}
		if b.PaymentStatus != domain.PaymentPaid && b.Status == domain.BookingApproved {
			if end, err := utils.ParseDate(b.EndDate); err == nil {
				days := domain.OverdueDays(end, now)
				item.OverdueDays = days
				item.OverdueAmount = domain.OverdueAmount(b.DailyPrice, days)
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// Detail returns one booking with its payments, scoped to the owner unless admin.
func (s BookingService) Detail(userID, bookingID int64, isAdmin bool) (models.Booking, []models.Payment, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Booking{}, nil, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, nil, domain.InternalError{Err: err}
	}
	if !isAdmin && b.UserID != userID {
		return models.Booking{}, nil, domain.NotFoundError{Resource: "booking"}
	}

	payments, err := s.PaymentRepo.ListByBooking(bookingID)
	if err != nil {
		return models.Booking{}, nil, domain.InternalError{Err: err}
	}
	return b, payments, nil
}

// Cancel only works while the booking is still pending.
func (s BookingService) Cancel(userID, bookingID int64) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if b.UserID != userID {
		return domain.NotFoundError{Resource: "booking"}
	}
	if b.Status != domain.BookingPending {
		return domain.ConflictError{Resource: "booking", Msg: "hanya booking pending yang bisa dibatalkan"}
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, domain.BookingCancelled); err != nil {
		return domain.InternalError{Err: err}
	}
	logger.Event(s.RequestID, "booking", "cancel", "booking dibatalkan")
	return nil
}

// SetStatus is the admin approve/reject transition. Approval menandai
// kendaraan tidak tersedia; Complete yang mengembalikannya.
func (s BookingService) SetStatus(bookingID int64, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != domain.BookingApproved && status != domain.BookingRejected {
		return domain.ValidationError{Field: "status", Msg: "status harus approved atau rejected"}
	}

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if b.Status != domain.BookingPending {
		return domain.ConflictError{Resource: "booking", Msg: "booking sudah diproses"}
	}

	if status == domain.BookingApproved {
		vehicle, err := s.VehicleRepo.GetByID(b.VehicleID)
		if err == nil && !vehicle.Available {
			return domain.ConflictError{Resource: "kendaraan", Msg: "kendaraan sudah tidak tersedia"}
		}
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, status); err != nil {
		return domain.InternalError{Err: err}
	}

	if status == domain.BookingApproved {
		if err := s.VehicleRepo.SetAvailability(b.VehicleID, false); err != nil {
			logger.Error(s.RequestID, "booking", "set_status", err)
		}
	}
	logger.Event(s.RequestID, "booking", "set_status", "booking "+status)
	return nil
}

// Complete closes an approved booking after the vehicle is returned and
// puts the vehicle back in the catalog. Booking completed tidak lagi
// dihitung sebagai booking aktif.
func (s BookingService) Complete(bookingID int64) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if b.Status != domain.BookingApproved {
		return domain.ConflictError{Resource: "booking", Msg: "hanya booking approved yang bisa diselesaikan"}
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, domain.BookingCompleted); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.VehicleRepo.SetAvailability(b.VehicleID, true); err != nil {
		logger.Error(s.RequestID, "booking", "complete", err)
	}
	logger.Event(s.RequestID, "booking", "complete", "booking selesai, kendaraan tersedia kembali")
	return nil
}
