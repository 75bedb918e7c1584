package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/http/middleware"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/services"
)

type BookingHandler struct {
	Svc services.BookingService
}

func (h BookingHandler) svc(c *gin.Context) services.BookingService {
	s := h.Svc
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// POST /api/bookings
func (h BookingHandler) Create(c *gin.Context) {
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	booking, err := h.svc(c).CreateBooking(middleware.GetUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings
func (h BookingHandler) List(c *gin.Context) {
	list, err := h.svc(c).History(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings/:id
func (h BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}

	booking, payments, err := h.svc(c).Detail(middleware.GetUserID(c), id, middleware.IsAdmin(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":  booking,
		"payments": payments,
	})
}

// POST /api/bookings/:id/cancel
func (h BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	if err := h.svc(c).Cancel(middleware.GetUserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dibatalkan"})
}

// GET /api/admin/bookings?status=pending
func (h BookingHandler) ListAll(c *gin.Context) {
	list, err := h.Svc.BookingRepo.ListAll(strings.TrimSpace(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data booking: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/admin/bookings/:id/complete
func (h BookingHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	if err := h.svc(c).Complete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking selesai"})
}

// PUT /api/admin/bookings/:id/approve dan /reject
func (h BookingHandler) SetStatus(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
			return
		}
		if err := h.svc(c).SetStatus(id, status); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "booking " + status})
	}
}
