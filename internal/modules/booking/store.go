// README: Submission event log backed by PostgreSQL.
package booking

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO booking_events (
            profile_id, from_status, to_status, booking_id, detail, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ProfileID,
		string(e.FromStatus),
		string(e.ToStatus),
		e.BookingID,
		e.Detail,
		e.CreatedAt,
	)
	return err
}
