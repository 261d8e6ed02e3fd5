package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"ecmis-core/internal/infrastructure/database/postgres"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Runner applique les migrations SQL embarquées dans l'ordre lexical.
// Chaque fichier appliqué est tracé dans schema_migrations pour l'idempotence.
type Runner struct {
	db *postgres.Client
}

func NewRunner(db *postgres.Client) *Runner {
	return &Runner{db: db}
}

// MigrationStatus état d'application des migrations
type MigrationStatus struct {
	Applied []string `json:"applied"`
	Pending []string `json:"pending"`
}

// Apply exécute toutes les migrations non encore appliquées.
func (r *Runner) Apply(ctx context.Context) (*MigrationStatus, error) {
	if err := r.ensureTrackingTable(ctx); err != nil {
		return nil, err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	names, err := r.listMigrations()
	if err != nil {
		return nil, err
	}

	status := &MigrationStatus{}
	for _, name := range names {
		if applied[name] {
			status.Applied = append(status.Applied, name)
			continue
		}

		content, err := migrationFiles.ReadFile("sql/" + name)
		if err != nil {
			return nil, fmt.Errorf("lecture migration %s échouée: %w", name, err)
		}

		if err := r.applyOne(ctx, name, string(content)); err != nil {
			return nil, fmt.Errorf("migration %s échouée: %w", name, err)
		}

		status.Applied = append(status.Applied, name)
	}

	return status, nil
}

func (r *Runner) applyOne(ctx context.Context, name, sql string) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("impossible de démarrer la transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`,
		name,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Runner) ensureTrackingTable(ctx context.Context) error {
	return r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
}

func (r *Runner) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("lecture schema_migrations échouée: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func (r *Runner) listMigrations() ([]string, error) {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("lecture des migrations embarquées échouée: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}
