package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/http/middleware"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/services"
)

// maxWait membatasi endpoint wait supaya tidak menggantung koneksi terlalu lama.
const maxWait = 60 * time.Second

type TopupHandler struct {
	Svc services.TopupService
}

func (h TopupHandler) svc(c *gin.Context) services.TopupService {
	s := h.Svc
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// POST /api/topups
func (h TopupHandler) Create(c *gin.Context) {
	var in services.CreateTopupInput
	if !BindJSONOrError(c, &in) {
		return
	}

	topup, err := h.svc(c).CreateTopup(middleware.GetUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topup)
}

// GET /api/topups
func (h TopupHandler) List(c *gin.Context) {
	list, err := h.svc(c).List(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/topups/:id
func (h TopupHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	topup, err := h.svc(c).Get(middleware.GetUserID(c), id, middleware.IsAdmin(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, topup)
}

// GET /api/topups/:id/wait?timeout=30
// Menunggu status terminal paling lama `timeout` detik (maks 60), lalu
// mengembalikan status terakhir. FE tinggal memanggil ulang sampai terminal.
func (h TopupHandler) Wait(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}

	timeout := 30 * time.Second
	if raw := c.Query("timeout"); raw != "" {
		if sec, err := strconv.Atoi(raw); err == nil && sec > 0 {
			timeout = time.Duration(sec) * time.Second
		}
	}
	if timeout > maxWait {
		timeout = maxWait
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	topup, err := h.svc(c).WaitForStatus(ctx, middleware.GetUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, topup)
}

// GET /api/saldo
func (h TopupHandler) Saldo(c *gin.Context) {
	saldo, err := h.svc(c).Saldo(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saldo)
}

type topupDecision struct {
	Notes string `json:"notes"`
}

// PUT /api/admin/topups/:id/verify
func (h TopupHandler) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	var req topupDecision
	_ = c.ShouldBindJSON(&req)

	if err := h.svc(c).Verify(id, req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "top-up diverifikasi, saldo bertambah"})
}

// PUT /api/admin/topups/:id/reject
func (h TopupHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	var req topupDecision
	_ = c.ShouldBindJSON(&req)

	if err := h.svc(c).Reject(id, req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "top-up ditolak"})
}
