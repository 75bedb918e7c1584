package domain

import "strings"

// Booking status lifecycle.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment status values (per payment row and aggregated on the booking).
// Rejected berlaku per baris payment saja, bukan di agregat booking.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentOverdue  = "overdue"
	PaymentRejected = "rejected"
)

// Top-up request status values.
const (
	TopupPending  = "pending"
	TopupVerified = "verified"
	TopupRejected = "rejected"
	TopupExpired  = "expired"
)

// IsTerminalTopup reports whether a top-up no longer changes state.
func IsTerminalTopup(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case TopupVerified, TopupRejected, TopupExpired:
		return true
	default:
		return false
	}
}
