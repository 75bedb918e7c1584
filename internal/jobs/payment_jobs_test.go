package jobs

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMarkOverduePayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.columns").
		WithArgs("payments", "due_date").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("due_date"))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 2))

	NewJobRunner(db).MarkOverduePayments()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkOverdueSkipsWithoutDueDateColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// skema lama tanpa due_date: sweep tidak menjalankan UPDATE apa pun
	mock.ExpectQuery("information_schema.columns").
		WithArgs("payments", "due_date").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	NewJobRunner(db).MarkOverduePayments()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExpireStaleTopups(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE topup_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))

	NewJobRunner(db).ExpireStaleTopups()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestJobRecoversFromPanic(t *testing.T) {
	jr := NewJobRunner(nil)

	// PaymentRepo tanpa DB akan panic saat query, job tidak boleh ikut mati
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic bocor keluar job: %v", r)
		}
	}()
	jr.MarkOverduePayments()
}
