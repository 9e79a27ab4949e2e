// README: Itinerary archive backed by PostgreSQL (JSONB payload + summary columns).
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("itinerary not found")

// ArchiveSummary is the listing row for a stored itinerary.
type ArchiveSummary struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Country     string    `json:"country"`
	Mode        Mode      `json:"mode"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the archive table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS itineraries (
            id          TEXT PRIMARY KEY,
            destination TEXT NOT NULL,
            country     TEXT NOT NULL,
            mode        TEXT NOT NULL,
            duration    INT NOT NULL,
            payload     JSONB NOT NULL,
            created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
	return err
}

// Save stores a generated itinerary and returns its archive id.
func (s *Store) Save(ctx context.Context, it *Itinerary) (string, error) {
	payload, err := json.Marshal(it)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.db.Exec(ctx, `
        INSERT INTO itineraries (id, destination, country, mode, duration, payload, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id,
		it.Destination.Name,
		it.Destination.Country,
		string(it.Mode),
		it.Duration,
		payload,
		time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Itinerary, error) {
	row := s.db.QueryRow(ctx, `SELECT payload FROM itineraries WHERE id = $1`, id)

	var payload []byte
	err := row.Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var it Itinerary
	if err := json.Unmarshal(payload, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]ArchiveSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
        SELECT id, destination, country, mode, duration, created_at
        FROM itineraries
        ORDER BY created_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchiveSummary
	for rows.Next() {
		var s ArchiveSummary
		if err := rows.Scan(&s.ID, &s.Destination, &s.Country, &s.Mode, &s.Duration, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
