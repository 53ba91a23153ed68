package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one persisted scoring pass.
type Run struct {
	ID           string    `json:"id"`
	Country      string    `json:"country"`
	PeriodNumber int       `json:"periodNumber"`
	Reference    time.Time `json:"reference"`
	Customers    int       `json:"customers"`
	CreatedAt    string    `json:"createdAt"`
}

// CreateRun records a new run and returns its generated id.
func (s *Store) CreateRun(country string, periodNumber int, reference time.Time, customers int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, country, period_number, reference, customers) VALUES (?, ?, ?, ?, ?)",
		id, country, periodNumber, reference.Format("2006-01-02"), customers,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

// GetRun loads one run by id. Returns (nil, nil) when the id is unknown.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		"SELECT id, country, period_number, reference, customers, created_at FROM runs WHERE id = ?",
		id,
	)
	var r Run
	var ref string
	err := row.Scan(&r.ID, &r.Country, &r.PeriodNumber, &ref, &r.Customers, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	r.Reference, err = time.ParseInLocation("2006-01-02", ref, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run reference: %w", err)
	}
	return &r, nil
}

// ListRuns returns all runs for a country, newest first.
func (s *Store) ListRuns(country string) ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT id, country, period_number, reference, customers, created_at FROM runs WHERE country = ? ORDER BY created_at DESC",
		country,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ref string
		if err := rows.Scan(&r.ID, &r.Country, &r.PeriodNumber, &ref, &r.Customers, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Reference, err = time.ParseInLocation("2006-01-02", ref, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run reference: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetPriorGroups returns the segment labels of the latest run for the
// given country and period number, keyed by customer id. An empty map
// means no such run exists yet.
func (s *Store) GetPriorGroups(country string, periodNumber int) (map[string]string, error) {
	row := s.db.QueryRow(
		"SELECT id FROM runs WHERE country = ? AND period_number = ? ORDER BY created_at DESC LIMIT 1",
		country, periodNumber,
	)
	var runID string
	err := row.Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find prior run: %w", err)
	}

	rows, err := s.db.Query("SELECT customer_id, segment FROM profiles WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior segments: %w", err)
	}
	defer rows.Close()

	groups := make(map[string]string)
	for rows.Next() {
		var id, segment string
		if err := rows.Scan(&id, &segment); err != nil {
			return nil, fmt.Errorf("failed to scan prior segment: %w", err)
		}
		groups[id] = segment
	}
	return groups, rows.Err()
}
