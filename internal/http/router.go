package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	h "github.com/ardifx01/aplikasi-driver-sub000/internal/http/handlers"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/http/middleware"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/services"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/storage"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	store := storage.LocalStore{Dir: env.UploadDir}

	bookingSvc := services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		VehicleRepo: repositories.VehicleRepository{},
		PaymentRepo: repositories.PaymentRepository{},
	}
	paymentSvc := services.PaymentService{
		PaymentRepo: repositories.PaymentRepository{},
		BookingRepo: repositories.BookingRepository{},
		Store:       store,
	}
	topupSvc := services.TopupService{
		TopupRepo: repositories.TopupRepository{},
		UserRepo:  repositories.UserRepository{},
		Store:     store,
	}
	docsSvc := services.DocsService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
	}

	authH := h.AuthHandler{UserRepo: repositories.UserRepository{}, JWTSecret: []byte(env.JWTSecret)}
	vehicleH := h.VehicleHandler{Repo: repositories.VehicleRepository{}}
	bookingH := h.BookingHandler{Svc: bookingSvc}
	paymentH := h.PaymentHandler{Svc: paymentSvc}
	topupH := h.TopupHandler{Svc: topupSvc}
	docsH := h.DocsHandler{Svc: docsSvc, BookingSvc: bookingSvc}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/register", authH.Register)

		// Public vehicle catalog
		api.GET("/vehicles", vehicleH.List)
		api.GET("/vehicles/:id", vehicleH.Get)

		// Authenticated driver routes
		user := api.Group("")
		user.Use(middleware.Auth([]byte(env.JWTSecret)))
		{
			bookings := user.Group("/bookings")
			bookings.POST("", bookingH.Create)
			bookings.GET("", bookingH.List)
			bookings.GET("/:id", bookingH.Get)
			bookings.POST("/:id/cancel", bookingH.Cancel)
			bookings.POST("/:id/payments", paymentH.Submit)
			bookings.GET("/:id/invoice", docsH.Invoice)
			bookings.GET("/:id/receipt", docsH.Receipt)

			user.GET("/payments", paymentH.Track)

			topups := user.Group("/topups")
			topups.POST("", topupH.Create)
			topups.GET("", topupH.List)
			topups.GET("/:id", topupH.Get)
			topups.GET("/:id/wait", topupH.Wait)

			user.GET("/saldo", topupH.Saldo)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.Auth([]byte(env.JWTSecret)), middleware.AdminOnly())
		{
			admin.GET("/bookings", bookingH.ListAll)
			admin.PUT("/bookings/:id/approve", bookingH.SetStatus("approved"))
			admin.PUT("/bookings/:id/reject", bookingH.SetStatus("rejected"))
			admin.PUT("/bookings/:id/complete", bookingH.Complete)

			admin.PUT("/payments/:id/approve", paymentH.Approve)
			admin.PUT("/payments/:id/reject", paymentH.Reject)

			admin.PUT("/topups/:id/verify", topupH.Verify)
			admin.PUT("/topups/:id/reject", topupH.Reject)

			admin.POST("/vehicles", vehicleH.Create)
			admin.PUT("/vehicles/:id", vehicleH.Update)
			admin.DELETE("/vehicles/:id", vehicleH.Delete)
		}
	}

	h.SetRouter(r)
	return r
}
