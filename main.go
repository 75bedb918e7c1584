package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "github.com/ardifx01/aplikasi-driver-sub000/internal/config"
	router "github.com/ardifx01/aplikasi-driver-sub000/internal/http"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/jobs"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/logger"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/scheduler"
)

func main() {
	env := intconfig.LoadEnv()
	logger.Setup(env.LogFile)

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	sched := scheduler.NewScheduler(jobs.NewJobRunner(db))
	sched.Start()

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      75 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("Mematikan server...")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Shutdown server gagal: %v", err)
	}

	logrus.Info("Server berhenti dengan aman.")
}
