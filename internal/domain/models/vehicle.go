package models

// Vehicle is a rentable unit.
type Vehicle struct {
	ID          int64  `json:"id"`
	VehicleCode string `json:"vehicleCode"`
	Name        string `json:"name"`
	PlateNumber string `json:"plateNumber"`
	Category    string `json:"category,omitempty"`
	Color       string `json:"color,omitempty"`
	Seats       int    `json:"seats,omitempty"`
	DailyPrice  int64  `json:"dailyPrice"`
	DriverFee   int64  `json:"driverFee"`
	Available   bool   `json:"available"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
