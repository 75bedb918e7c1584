package models

// Booking captures booking data used across services.
type Booking struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"userId"`
	VehicleID        int64  `json:"vehicleId"`
	VehicleName      string `json:"vehicleName,omitempty"`
	PlateNumber      string `json:"plateNumber,omitempty"`
	StartDate        string `json:"startDate"` // YYYY-MM-DD
	EndDate          string `json:"endDate"`   // YYYY-MM-DD
	WithDriver       bool   `json:"withDriver"`
	Duration         int    `json:"duration"`
	DailyPrice       int64  `json:"dailyPrice"`
	DriverFee        int64  `json:"driverFee"`
	Status           string `json:"status"`
	TotalAmount      int64  `json:"totalAmount"`
	PaidAmount       int64  `json:"paidAmount"`
	RemainingPayment int64  `json:"remainingPayment"`
	PaymentStatus    string `json:"paymentStatus"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// BookingHistoryItem is a booking enriched with derived fields for listing.
type BookingHistoryItem struct {
	Booking
	OverdueDays   int   `json:"overdueDays"`
	OverdueAmount int64 `json:"overdueAmount"`
}
