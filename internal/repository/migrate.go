package repository

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations
var migrationsFS embed.FS

type migrationFile struct {
	version int
	name    string
	path    string
}

// Migrate applies the embedded migrations for the given driver in version
// order, skipping those already recorded in schema_migrations.
// File names follow 000001_description.up.sql.
func Migrate(db *sqlx.DB, driver string) error {
	dir := "migrations/" + driver

	if err := ensureMigrationsTable(db); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}

	migrations, err := collectMigrations(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("collecting migrations for %s: %w", driver, err)
	}
	if len(migrations) == 0 {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}

		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("applying migration %06d: %w", m.version, err)
		}
		log.WithFields(log.Fields{"version": m.version, "name": m.name}).Info("applied migration")
	}

	return nil
}

func ensureMigrationsTable(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY
		)`)
	return err
}

func appliedVersions(db *sqlx.DB) (map[int]bool, error) {
	var versions []int
	if err := db.Select(&versions, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, err
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func collectMigrations(fsys fs.FS, dir string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var migrations []migrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			continue
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}

		migrations = append(migrations, migrationFile{
			version: version,
			name:    strings.TrimSuffix(parts[1], ".up.sql"),
			path:    dir + "/" + entry.Name(),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})

	return migrations, nil
}

func applyMigration(db *sqlx.DB, m migrationFile) error {
	content, err := fs.ReadFile(migrationsFS, m.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.path, err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(string(content)); err != nil {
		return err
	}

	if _, err := tx.Exec(tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), m.version); err != nil {
		return err
	}

	return tx.Commit()
}
