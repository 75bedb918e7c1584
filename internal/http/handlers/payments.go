package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/http/middleware"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/services"
)

type PaymentHandler struct {
	Svc services.PaymentService
}

func (h PaymentHandler) svc(c *gin.Context) services.PaymentService {
	s := h.Svc
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// POST /api/bookings/:id/payments
func (h PaymentHandler) Submit(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}

	var in services.SubmitPaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}

	payment, err := h.svc(c).SubmitPayment(middleware.GetUserID(c), bookingID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GET /api/payments
func (h PaymentHandler) Track(c *gin.Context) {
	list, err := h.svc(c).Track(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/admin/payments/:id/approve
func (h PaymentHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	if err := h.svc(c).Approve(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pembayaran disetujui"})
}

type rejectRequest struct {
	Notes string `json:"notes"`
}

// PUT /api/admin/payments/:id/reject
func (h PaymentHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	var req rejectRequest
	_ = c.ShouldBindJSON(&req) // notes opsional

	if err := h.svc(c).Reject(id, req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pembayaran ditolak"})
}
