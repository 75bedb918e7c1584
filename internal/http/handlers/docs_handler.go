package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/http/middleware"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/services"
)

type DocsHandler struct {
	Svc        services.DocsService
	BookingSvc services.BookingService
}

// ownBooking memastikan user hanya bisa unduh dokumen miliknya sendiri.
func (h DocsHandler) ownBooking(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return 0, false
	}
	if _, _, err := h.BookingSvc.Detail(middleware.GetUserID(c), id, middleware.IsAdmin(c)); err != nil {
		RespondDomainError(c, err)
		return 0, false
	}
	return id, true
}

// GET /api/bookings/:id/invoice
func (h DocsHandler) Invoice(c *gin.Context) {
	id, ok := h.ownBooking(c)
	if !ok {
		return
	}
	svc := h.Svc
	svc.RequestID = middleware.GetRequestID(c)

	pdf, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/:id/receipt
func (h DocsHandler) Receipt(c *gin.Context) {
	id, ok := h.ownBooking(c)
	if !ok {
		return
	}
	svc := h.Svc
	svc.RequestID = middleware.GetRequestID(c)

	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
