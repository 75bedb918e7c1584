package jobs

import (
	"time"

	logrus "github.com/sirupsen/logrus"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/domain"
	"github.com/ardifx01/aplikasi-driver-sub000/internal/utils"
)

// MarkOverduePayments flips pending payments whose due date has passed.
func (jr *JobRunner) MarkOverduePayments() {
	jr.runWithRecovery("MarkOverduePayments", func() {
		today := utils.FormatDate(time.Now())
		n, err := jr.PaymentRepo.MarkOverdue(today)
		if err != nil {
			logrus.WithField("job", "MarkOverduePayments").Error(err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"job":   "MarkOverduePayments",
			"count": n,
		}).Info("marked payments as overdue")
	})
}

// ExpireStaleTopups marks pending top-ups past the verification window as
// expired. Batas 30 menit, sama dengan timeout polling di aplikasi lama.
func (jr *JobRunner) ExpireStaleTopups() {
	jr.runWithRecovery("ExpireStaleTopups", func() {
		cutoff := utils.FormatDateTime(time.Now().Add(-domain.TopupExpiry))
		n, err := jr.TopupRepo.ExpireStale(cutoff)
		if err != nil {
			logrus.WithField("job", "ExpireStaleTopups").Error(err)
			return
		}
		if n > 0 {
			logrus.WithFields(logrus.Fields{
				"job":   "ExpireStaleTopups",
				"count": n,
			}).Info("expired stale top-up requests")
		}
	})
}
