package domain

import (
	"math"
	"time"
)

// TopupExpiry is how long a pending top-up may wait for verification.
const TopupExpiry = 30 * time.Minute

// RentalDuration returns the rental length in days: ceiling of the
// calendar-day difference between pickup and return, minimum 1.
func RentalDuration(pickup, ret time.Time) int {
	diff := ret.Sub(pickup)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24.0))
	if days < 1 {
		days = 1
	}
	return days
}

// TotalPrice menghitung total sewa: harga harian x durasi,
// plus fee sopir x durasi kalau pakai sopir.
func TotalPrice(dailyPrice int64, duration int, withDriver bool, driverFee int64) int64 {
	if duration < 1 {
		duration = 1
	}
	total := dailyPrice * int64(duration)
	if withDriver {
		total += driverFee * int64(duration)
	}
	return total
}

// PaymentState is the reconciled booking-side view after a payment.
type PaymentState struct {
	PaidAmount       int64
	RemainingPayment int64
	PaymentStatus    string
}

// ApplyPayment reconciles a submitted amount against the booking totals.
// Invariant: PaidAmount + RemainingPayment == total, selalu.
func ApplyPayment(total, paid, amount int64) (PaymentState, error) {
	if amount <= 0 {
		return PaymentState{}, ValidationError{Field: "amount", Msg: "jumlah pembayaran harus lebih dari 0"}
	}
	remaining := total - paid
	if remaining < 0 {
		remaining = 0
	}
	if amount > remaining {
		return PaymentState{}, ValidationError{Field: "amount", Msg: "jumlah melebihi sisa pembayaran"}
	}

	newPaid := paid + amount
	newRemaining := total - newPaid

	status := PaymentPending
	if newRemaining == 0 {
		status = PaymentPaid
	}

	return PaymentState{
		PaidAmount:       newPaid,
		RemainingPayment: newRemaining,
		PaymentStatus:    status,
	}, nil
}

// OverdueDays returns whole days past the due date, 0 when not yet due.
func OverdueDays(dueDate, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	days := int(now.Sub(dueDate).Hours() / 24.0)
	if days < 1 {
		days = 1
	}
	return days
}

// OverdueAmount is the late charge: daily rate x overdue days.
func OverdueAmount(dailyRate int64, days int) int64 {
	if days <= 0 {
		return 0
	}
	return dailyRate * int64(days)
}
