package models

// User mirrors the users table auth payload.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Saldo is the consolidated balance view for a user.
// Source "drivers" kalau ada row driver, selain itu fallback ke "users".
type Saldo struct {
	UserID  int64  `json:"user_id"`
	Balance int64  `json:"balance"`
	Source  string `json:"source"`
}
