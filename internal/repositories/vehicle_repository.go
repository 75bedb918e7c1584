package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleSelect = `
	SELECT id,
	       COALESCE(vehicle_code, ''),
	       COALESCE(name, ''),
	       COALESCE(plate_number, ''),
	       COALESCE(category, ''),
	       COALESCE(color, ''),
	       COALESCE(seats, 0),
	       COALESCE(daily_price, 0),
	       COALESCE(driver_fee, 0),
	       COALESCE(available, 0),
	       COALESCE(image_url, '')
	FROM vehicles
`

func scanVehicle(row interface{ Scan(...any) error }) (models.Vehicle, error) {
	var v models.Vehicle
	var available int
	if err := row.Scan(
		&v.ID,
		&v.VehicleCode,
		&v.Name,
		&v.PlateNumber,
		&v.Category,
		&v.Color,
		&v.Seats,
		&v.DailyPrice,
		&v.DriverFee,
		&available,
		&v.ImageURL,
	); err != nil {
		return models.Vehicle{}, err
	}
	v.Available = available != 0
	return v, nil
}

// List returns vehicles, optionally only available ones, with q search and paging.
func (r VehicleRepository) List(q string, onlyAvailable bool, page, limit int) ([]models.Vehicle, error) {
	where := []string{}
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = append(where, "(vehicle_code LIKE ? OR name LIKE ? OR plate_number LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if onlyAvailable {
		where = append(where, "available = 1")
	}

	query := vehicleSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	if page > 0 && limit > 0 {
		if limit > 200 {
			limit = 200
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	if id <= 0 {
		return models.Vehicle{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(vehicleSelect+` WHERE id = ? LIMIT 1`, id)
	return scanVehicle(row)
}

func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	available := 0
	if v.Available {
		available = 1
	}
	res, err := r.db().Exec(`
		INSERT INTO vehicles
		(vehicle_code, name, plate_number, category, color, seats,
		 daily_price, driver_fee, available, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		v.VehicleCode, v.Name, v.PlateNumber, v.Category, v.Color, v.Seats,
		v.DailyPrice, v.DriverFee, available, v.ImageURL,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(v models.Vehicle) error {
	if v.ID <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	available := 0
	if v.Available {
		available = 1
	}
	_, err := r.db().Exec(`
		UPDATE vehicles
		SET vehicle_code = ?, name = ?, plate_number = ?, category = ?,
		    color = ?, seats = ?, daily_price = ?, driver_fee = ?,
		    available = ?, image_url = ?
		WHERE id = ?
	`,
		v.VehicleCode, v.Name, v.PlateNumber, v.Category, v.Color, v.Seats,
		v.DailyPrice, v.DriverFee, available, v.ImageURL, v.ID,
	)
	return err
}

// SetAvailability toggles the availability flag (booking approval/completion).
func (r VehicleRepository) SetAvailability(id int64, available bool) error {
	val := 0
	if available {
		val = 1
	}
	_, err := r.db().Exec(`UPDATE vehicles SET available = ? WHERE id = ?`, val, id)
	return err
}

func (r VehicleRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
