package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain/models"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/utils"
)

type VehicleHandler struct {
	Repo repositories.VehicleRepository
}

type vehiclePayload struct {
	VehicleCode string `json:"vehicleCode" binding:"required"`
	Name        string `json:"name" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Seats       int    `json:"seats"`
	DailyPrice  int64  `json:"dailyPrice"`
	DriverFee   int64  `json:"driverFee"`
	Available   *bool  `json:"available"`
	ImageURL    string `json:"imageUrl"`
}

// GET /api/vehicles?q=avanza&available=1&page=1&limit=50
func (h VehicleHandler) List(c *gin.Context) {
	q := utils.NormalizeSpace(c.Query("q"))
	onlyAvailable := c.Query("available") == "1" || strings.EqualFold(c.Query("available"), "true")

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	if page < 0 {
		page = 0
	}
	if limit < 0 {
		limit = 0
	}

	list, err := h.Repo.List(q, onlyAvailable, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data kendaraan: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/vehicles/:id
func (h VehicleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	v, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "kendaraan tidak ditemukan", nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data kendaraan: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/vehicles (admin)
func (h VehicleHandler) Create(c *gin.Context) {
	var in vehiclePayload
	if !BindJSONOrError(c, &in) {
		return
	}

	v := vehicleFromPayload(in)
	id, err := h.Repo.Create(v)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "kode kendaraan sudah dipakai", nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan kendaraan: " + err.Error()})
		return
	}
	v.ID = id
	c.JSON(http.StatusCreated, v)
}

// PUT /api/vehicles/:id (admin)
func (h VehicleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	var in vehiclePayload
	if !BindJSONOrError(c, &in) {
		return
	}

	v := vehicleFromPayload(in)
	v.ID = id
	if err := h.Repo.Update(v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update kendaraan: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/vehicles/:id (admin)
func (h VehicleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "kendaraan tidak ditemukan", nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus kendaraan: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kendaraan dihapus"})
}

func vehicleFromPayload(in vehiclePayload) models.Vehicle {
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return models.Vehicle{
		VehicleCode: strings.TrimSpace(in.VehicleCode),
		Name:        strings.TrimSpace(in.Name),
		PlateNumber: strings.TrimSpace(in.PlateNumber),
		Category:    strings.TrimSpace(in.Category),
		Color:       strings.TrimSpace(in.Color),
		Seats:       in.Seats,
		DailyPrice:  in.DailyPrice,
		DriverFee:   in.DriverFee,
		Available:   available,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}
