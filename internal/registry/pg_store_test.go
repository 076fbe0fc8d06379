package registry

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var apptColumns = []string{"reference_id", "patient_name", "contact_number", "status", "created_at"}

func TestPgStoreInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Now().UTC()
	appt := Appointment{
		ReferenceID:   "APT-0001",
		PatientName:   "Asha Rao",
		ContactNumber: "+91 9876543210",
		Status:        StatusConfirmed,
		CreatedAt:     created,
	}

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs("APT-0001", "Asha Rao", "+91 9876543210", StatusConfirmed, created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPgStore(mock)
	require.NoError(t, store.Insert(context.Background(), appt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStoreInsertUnavailable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO appointments").
		WillReturnError(context.DeadlineExceeded)

	store := NewPgStore(mock)
	err = store.Insert(context.Background(), Appointment{ReferenceID: "APT-0001"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestPgStoreGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT reference_id, patient_name, contact_number, status, created_at").
		WithArgs("APT-0001").
		WillReturnRows(pgxmock.NewRows(apptColumns).
			AddRow("APT-0001", "Asha Rao", "+91 9876543210", StatusConfirmed, created))

	store := NewPgStore(mock)
	got, err := store.Get(context.Background(), "APT-0001")
	require.NoError(t, err)
	require.Equal(t, "APT-0001", got.ReferenceID)
	require.Equal(t, "Asha Rao", got.PatientName)
	require.Equal(t, StatusConfirmed, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStoreGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT reference_id, patient_name, contact_number, status, created_at").
		WithArgs("APT-9999").
		WillReturnError(pgx.ErrNoRows)

	store := NewPgStore(mock)
	_, err = store.Get(context.Background(), "APT-9999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPgStoreList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT reference_id, patient_name, contact_number, status, created_at").
		WillReturnRows(pgxmock.NewRows(apptColumns).
			AddRow("APT-0001", "Asha Rao", "9876543210", StatusConfirmed, created).
			AddRow("APT-0002", "Vikram Shah", "9876543211", StatusConfirmed, created))

	store := NewPgStore(mock)
	appts, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, appts, 2)
	require.Equal(t, "APT-0001", appts[0].ReferenceID)
	require.Equal(t, "APT-0002", appts[1].ReferenceID)
}

func TestPgAllocatorNext(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE reference_allocator").
		WithArgs(MaxReferenceSeq).
		WillReturnRows(pgxmock.NewRows([]string{"last_seq"}).AddRow(7))

	alloc := NewPgAllocator(mock)
	ref, err := alloc.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "APT-0007", ref)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgAllocatorExhausted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE reference_allocator").
		WithArgs(MaxReferenceSeq).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT last_seq FROM reference_allocator").
		WillReturnRows(pgxmock.NewRows([]string{"last_seq"}).AddRow(MaxReferenceSeq))

	alloc := NewPgAllocator(mock)
	_, err = alloc.Next(context.Background())
	require.ErrorIs(t, err, ErrAllocatorExhausted)
}

func TestPgAllocatorSync(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE reference_allocator").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	alloc := NewPgAllocator(mock)
	require.NoError(t, alloc.Sync(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
