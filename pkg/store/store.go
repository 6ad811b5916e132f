// Package store keeps sweep results in a SQLite database. Numbers are stored
// as decimal text so that no digit is lost to a floating-point column.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned for an unknown sweep id.
var ErrNotFound = errors.New("store: sweep not found")

// Store persists sweeps in SQLite.
type Store struct {
	db *sql.DB
}

// Sweep describes one saved sweep.
type Sweep struct {
	ID        int64
	Output    string
	States    int
	Samples   int
	TMin      string
	TMax      string
	Step      string
	Energies  []string
	CreatedAt time.Time
}

// Row is one saved sample.
type Row struct {
	Index int
	T     string
	Tau   string
	Z     string
	P     []string
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores the parameters and every sample of m with the given number of
// significant digits, in one transaction, and returns the new sweep id.
func Save[T hpmath.Number[T]](ctx context.Context, s *Store, m *partition.Manager[T], digits int) (id int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p := m.Parameters()
	if m.Samples() == 0 {
		return 0, partition.ErrNotInitialized
	}

	energies := make([]string, p.States())
	for i := range energies {
		energies[i] = p.Energy(i).Text(digits)
	}
	ej, err := json.Marshal(energies)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sweeps (output, states, samples, t_min, t_max, step, energies, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Output(), p.States(), m.Samples(),
		p.TMin().Text(digits), p.TMax().Text(digits), p.Step().Text(digits),
		string(ej), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert sweep: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("sweep id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (sweep_id, idx, t, tau, z, p) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	_, rows := m.Table(digits)
	i := 0
	for row := range rows {
		pj, err := json.Marshal(row[3:])
		if err != nil {
			return 0, err
		}
		if _, err = stmt.ExecContext(ctx, id, i, row[0], row[1], row[2], string(pj)); err != nil {
			return 0, fmt.Errorf("insert sample %d: %w", i, err)
		}
		i++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// List returns every saved sweep, newest first.
func (s *Store) List(ctx context.Context) ([]Sweep, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, output, states, samples, t_min, t_max, step, energies, created_at
		 FROM sweeps ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sweeps: %w", err)
	}
	defer rows.Close()

	var out []Sweep
	for rows.Next() {
		sw, err := scanSweep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}

// Get returns the sweep with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Sweep, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, output, states, samples, t_min, t_max, step, energies, created_at
		 FROM sweeps WHERE id = ?`, id)
	sw, err := scanSweep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Sweep{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return sw, err
}

// Samples returns the samples of a sweep in temperature order.
func (s *Store) Samples(ctx context.Context, id int64) ([]Row, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, t, tau, z, p FROM samples WHERE sweep_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r  Row
			pj string
		)
		if err := rows.Scan(&r.Index, &r.T, &r.Tau, &r.Z, &pj); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if err := json.Unmarshal([]byte(pj), &r.P); err != nil {
			return nil, fmt.Errorf("decode probabilities: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSweep(sc scanner) (Sweep, error) {
	var (
		sw      Sweep
		ej      string
		created int64
	)
	if err := sc.Scan(&sw.ID, &sw.Output, &sw.States, &sw.Samples,
		&sw.TMin, &sw.TMax, &sw.Step, &ej, &created); err != nil {
		return Sweep{}, err
	}
	if err := json.Unmarshal([]byte(ej), &sw.Energies); err != nil {
		return Sweep{}, fmt.Errorf("decode energies: %w", err)
	}
	sw.CreatedAt = time.UnixMilli(created).UTC()
	return sw, nil
}
