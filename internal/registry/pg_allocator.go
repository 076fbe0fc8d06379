package registry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// PgAllocator keeps the last issued sequence number in the single row of the
// reference_allocator table. The increment is a single UPDATE..RETURNING, so
// two concurrent Next calls can never observe the same value, and the
// counter survives restarts.
type PgAllocator struct {
	pool PgxPool
}

func NewPgAllocator(pool PgxPool) *PgAllocator {
	return &PgAllocator{pool: pool}
}

func (a *PgAllocator) Next(ctx context.Context) (string, error) {
	row := a.pool.QueryRow(ctx, `
		UPDATE reference_allocator
		SET last_seq = last_seq + 1
		WHERE id = 1 AND last_seq < $1
		RETURNING last_seq
	`, MaxReferenceSeq)

	var seq int
	if err := row.Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The guarded UPDATE matched nothing: either the counter row is
			// missing or the sequence space is used up.
			return "", a.classifyMiss(ctx)
		}
		return "", unavailable("advance reference allocator", err)
	}

	return FormatReference(seq), nil
}

func (a *PgAllocator) classifyMiss(ctx context.Context) error {
	row := a.pool.QueryRow(ctx, `SELECT last_seq FROM reference_allocator WHERE id = 1`)

	var last int
	if err := row.Scan(&last); err != nil {
		return unavailable("read reference allocator", err)
	}
	if last >= MaxReferenceSeq {
		return ErrAllocatorExhausted
	}
	return unavailable("advance reference allocator", errors.New("allocator row did not update"))
}

// Sync raises the counter to the highest reference already stored. Run once
// at startup so identifiers issued before the allocator row existed are
// never reissued.
func (a *PgAllocator) Sync(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, `
		UPDATE reference_allocator
		SET last_seq = GREATEST(
			last_seq,
			(SELECT COALESCE(MAX(substring(reference_id from 5)::int), 0) FROM appointments)
		)
		WHERE id = 1
	`)
	if err != nil {
		return unavailable("sync reference allocator", err)
	}
	return nil
}
