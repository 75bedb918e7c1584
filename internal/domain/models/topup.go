package models

// TopupRequest is a user-submitted bank-transfer claim awaiting verification.
type TopupRequest struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	Amount        int64  `json:"amount"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	ReferenceCode string `json:"reference_code"`
	ProofFile     string `json:"proof_file,omitempty"`
	ProofFileName string `json:"proof_file_name,omitempty"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	VerifiedAt    string `json:"verified_at,omitempty"`
}
