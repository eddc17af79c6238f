// Package plans stores previewed rename batches in SQLite so they can be
// reviewed and committed later against the live document.
package plans

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/layerlint/internal/rename"
)

// timeLayout is fixed-width so stored timestamps sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// DBFileName is the plan database's file name inside the plans directory.
const DBFileName = "plans.db"

var (
	// ErrPlanNotFound indicates no plan with the given ID exists.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrPlanCommitted indicates the plan was already applied.
	ErrPlanCommitted = errors.New("plan already committed")
)

// Plan is a staged batch of renames for one document.
type Plan struct {
	ID         string    `json:"id"`
	Document   string    `json:"document"`
	Convention string    `json:"convention"`
	Casing     string    `json:"casing"`
	CreatedAt  time.Time `json:"createdAt"`
	// CommittedAt is nil until the plan is applied.
	CommittedAt *time.Time `json:"committedAt,omitempty"`
	// ChangeCount is filled by List, which does not load Changes.
	ChangeCount int              `json:"changeCount"`
	Changes     []rename.Preview `json:"changes,omitempty"`
}

// Committed reports whether the plan has been applied.
func (p *Plan) Committed() bool {
	return p.CommittedAt != nil
}

// Store persists plans in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the plan database at path. Use ":memory:"
// for a throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create plans directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenDir opens plans.db inside dir.
func OpenDir(dir string) (*Store, error) {
	return Open(filepath.Join(dir, DBFileName))
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores p and its changes in one transaction and returns the plan ID.
// An empty ID is replaced with a new UUID; a zero CreatedAt with the current time.
func (s *Store) Save(p *Plan) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = sq.Insert("plans").
		Columns("id", "document", "convention", "casing", "created_at").
		Values(p.ID, p.Document, p.Convention, p.Casing, formatTime(p.CreatedAt)).
		RunWith(tx).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to insert plan %s: %w", p.ID, err)
	}

	if len(p.Changes) > 0 {
		sqlStr, _, err := sq.Insert("plan_changes").
			Columns("plan_id", "seq", "node_id", "old_name", "new_name").
			Values("", 0, "", "", "").
			ToSql()
		if err != nil {
			return "", fmt.Errorf("failed to build SQL: %w", err)
		}
		stmt, err := tx.Prepare(sqlStr)
		if err != nil {
			return "", fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, c := range p.Changes {
			if _, err := stmt.Exec(p.ID, i, c.NodeID, c.OldName, c.NewName); err != nil {
				return "", fmt.Errorf("failed to insert change for node %s: %w", c.NodeID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit plan: %w", err)
	}
	p.ChangeCount = len(p.Changes)
	return p.ID, nil
}

// Get loads a plan with its changes in staging order.
func (s *Store) Get(id string) (*Plan, error) {
	var (
		p           Plan
		createdAt   string
		committedAt sql.NullString
	)
	err := sq.Select("id", "document", "convention", "casing", "created_at", "committed_at").
		From("plans").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRow().
		Scan(&p.ID, &p.Document, &p.Convention, &p.Casing, &createdAt, &committedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan %s: %w", id, err)
	}
	if err := p.setTimes(createdAt, committedAt); err != nil {
		return nil, err
	}

	rows, err := sq.Select("node_id", "old_name", "new_name").
		From("plan_changes").
		Where(sq.Eq{"plan_id": id}).
		OrderBy("seq").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query changes for plan %s: %w", id, err)
	}
	defer rows.Close()

	p.Changes = []rename.Preview{}
	for rows.Next() {
		var c rename.Preview
		if err := rows.Scan(&c.NodeID, &c.OldName, &c.NewName); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		p.Changes = append(p.Changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read changes: %w", err)
	}
	p.ChangeCount = len(p.Changes)
	return &p, nil
}

// List returns every plan, newest first, without loading changes.
func (s *Store) List() ([]*Plan, error) {
	rows, err := sq.Select("p.id", "p.document", "p.convention", "p.casing", "p.created_at", "p.committed_at", "COUNT(c.seq)").
		From("plans p").
		LeftJoin("plan_changes c ON c.plan_id = p.id").
		GroupBy("p.id").
		OrderBy("p.created_at DESC", "p.id").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []*Plan{}
	for rows.Next() {
		var (
			p           Plan
			createdAt   string
			committedAt sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Document, &p.Convention, &p.Casing, &createdAt, &committedAt, &p.ChangeCount); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if err := p.setTimes(createdAt, committedAt); err != nil {
			return nil, err
		}
		plans = append(plans, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}
	return plans, nil
}

// MarkCommitted records that the plan was applied at the given time. A plan
// can be committed only once.
func (s *Store) MarkCommitted(id string, at time.Time) error {
	res, err := sq.Update("plans").
		Set("committed_at", formatTime(at)).
		Where(sq.Eq{"id": id, "committed_at": nil}).
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var count int
	err = sq.Select("COUNT(*)").From("plans").Where(sq.Eq{"id": id}).RunWith(s.db).QueryRow().Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to query plan %s: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return fmt.Errorf("%w: %s", ErrPlanCommitted, id)
}

// Delete removes a plan and its changes.
func (s *Store) Delete(id string) error {
	res, err := sq.Delete("plans").Where(sq.Eq{"id": id}).RunWith(s.db).Exec()
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return nil
}

func (p *Plan) setTimes(createdAt string, committedAt sql.NullString) error {
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return fmt.Errorf("invalid created_at for plan %s: %w", p.ID, err)
	}
	p.CreatedAt = t
	if committedAt.Valid {
		c, err := time.Parse(timeLayout, committedAt.String)
		if err != nil {
			return fmt.Errorf("invalid committed_at for plan %s: %w", p.ID, err)
		}
		p.CommittedAt = &c
	}
	return nil
}
