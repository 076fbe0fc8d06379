package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the registry touches. Tests swap in
// a pgxmock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore persists appointments in Postgres.
type PgStore struct {
	pool PgxPool
}

func NewPgStore(pool PgxPool) *PgStore {
	return &PgStore{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ReferenceID,
		&a.PatientName,
		&a.ContactNumber,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable("scan appointment", err)
	}

	return &a, nil
}

func (s *PgStore) Insert(ctx context.Context, appt Appointment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO appointments (reference_id, patient_name, contact_number, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, appt.ReferenceID, appt.PatientName, appt.ContactNumber, appt.Status, appt.CreatedAt)
	if err != nil {
		return unavailable("insert appointment", err)
	}

	return nil
}

func (s *PgStore) Get(ctx context.Context, referenceID string) (*Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT reference_id, patient_name, contact_number, status, created_at
		FROM appointments
		WHERE reference_id = $1
	`, referenceID)
	return scanAppointment(row)
}

func (s *PgStore) List(ctx context.Context) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT reference_id, patient_name, contact_number, status, created_at
		FROM appointments
		ORDER BY reference_id
	`)
	if err != nil {
		return nil, unavailable("list appointments", err)
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("list appointments", err)
	}

	return result, nil
}

// unavailable tags a storage failure so the API boundary can surface it as a
// distinct kind rather than a generic internal error.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
