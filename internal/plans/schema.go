package plans

import (
	"database/sql"
	"fmt"
)

const createPlansTable = `
CREATE TABLE IF NOT EXISTS plans (
	id           TEXT PRIMARY KEY,
	document     TEXT NOT NULL,
	convention   TEXT NOT NULL,
	casing       TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	committed_at TEXT
)`

const createPlanChangesTable = `
CREATE TABLE IF NOT EXISTS plan_changes (
	plan_id  TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
	seq      INTEGER NOT NULL,
	node_id  TEXT NOT NULL,
	old_name TEXT NOT NULL,
	new_name TEXT NOT NULL,
	PRIMARY KEY (plan_id, seq)
)`

const createPlansCreatedIndex = `CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at)`

// createSchema creates the plan tables in a single transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []struct {
		name string
		ddl  string
	}{
		{"plans", createPlansTable},
		{"plan_changes", createPlanChangesTable},
		{"idx_plans_created_at", createPlansCreatedIndex},
	}
	for _, st := range statements {
		if _, err := tx.Exec(st.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", st.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}
