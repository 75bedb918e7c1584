package models

// Payment represents a single payment submission against a booking.
type Payment struct {
	ID            int64  `json:"id"`
	BookingID     int64  `json:"booking_id"`
	UserID        int64  `json:"user_id"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"` // transfer / qris / cash
	Status        string `json:"status"`
	ProofFile     string `json:"proof_file,omitempty"`
	ProofFileName string `json:"proof_file_name,omitempty"`
	Notes         string `json:"notes,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	PaidAt        string `json:"paid_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}
