package jobs

import (
	"database/sql"

	logrus "github.com/sirupsen/logrus"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/repositories"
)

// JobRunner coordinates the scheduled sweeps.
type JobRunner struct {
	DB          *sql.DB
	PaymentRepo repositories.PaymentRepository
	TopupRepo   repositories.TopupRepository
}

func NewJobRunner(db *sql.DB) *JobRunner {
	return &JobRunner{
		DB:          db,
		PaymentRepo: repositories.PaymentRepository{DB: db},
		TopupRepo:   repositories.TopupRepository{DB: db},
	}
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("job", jobName).Errorf("job panicked: %v", r)
		}
	}()

	logrus.WithField("job", jobName).Info("starting job")
	jobFunc()
	logrus.WithField("job", jobName).Info("job completed")
}
