// Package migrations brings a database file up to the current schema.
//
// Scripts are embedded SQL files named NNN-description.sql and applied in
// index order. Applied state is tracked in a migrations table holding a
// single version cell: -1 on a fresh file, otherwise the index of the last
// applied script. Rollbacks are not supported; the version only moves
// forward.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"punchclock/internal/errors"
	"punchclock/internal/logging"
)

//go:embed *.sql
var scriptsFS embed.FS

// initialVersion marks a database no script has been applied to.
const initialVersion = -1

// Run applies every pending embedded migration script to db.
func Run(ctx context.Context, db *sql.DB, log logging.Logger) error {
	return RunFS(ctx, db, scriptsFS, log)
}

// RunFS applies pending migration scripts from fsys to db. Each script runs
// as its own statement and the stored version is advanced after it, so an
// interrupted run resumes at the first unapplied script.
func RunFS(ctx context.Context, db *sql.DB, fsys fs.FS, log logging.Logger) error {
	scripts, target, err := loadScripts(fsys)
	if err != nil {
		return err
	}

	version, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	if version >= target {
		return nil
	}

	log.Info(ctx, "updating database schema", "from", version, "to", target)

	for i := version + 1; i <= target; i++ {
		script, ok := scripts[i]
		if !ok {
			return errors.NewMigrationMissingError(i)
		}
		if _, err := db.ExecContext(ctx, script); err != nil {
			return errors.NewMigrationError(i, err)
		}
		if _, err := db.ExecContext(ctx, "UPDATE migrations SET version = ?", i); err != nil {
			return errors.NewMigrationError(i, err)
		}
		log.Info(ctx, "applied migration", "index", i)
	}

	return nil
}

// currentVersion reads the stored schema version, creating the tracking
// table on a fresh database file.
func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'migrations'`).Scan(&n)
	if err != nil {
		return 0, errors.NewDatabaseError("probe migrations table", err)
	}

	if n == 0 {
		if _, err := db.ExecContext(ctx, `CREATE TABLE migrations (version INTEGER)`); err != nil {
			return 0, errors.NewDatabaseError("create migrations table", err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO migrations (version) VALUES (?)`, initialVersion); err != nil {
			return 0, errors.NewDatabaseError("initialise migrations table", err)
		}
	}

	var version int
	if err := db.QueryRowContext(ctx, `SELECT version FROM migrations`).Scan(&version); err != nil {
		return 0, errors.NewDatabaseError("read schema version", err)
	}
	return version, nil
}

// loadScripts reads every *.sql entry in fsys, keyed by the leading index in
// its name. The second result is the highest index found, or initialVersion
// when fsys holds no scripts.
func loadScripts(fsys fs.FS) (map[int]string, int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, 0, errors.NewDatabaseError("read migration scripts", err)
	}

	scripts := make(map[int]string)
	target := initialVersion
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		var index int
		if _, err := fmt.Sscanf(name, "%d-", &index); err != nil {
			continue
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, 0, errors.NewDatabaseError("read migration script", err)
		}

		scripts[index] = string(body)
		if index > target {
			target = index
		}
	}

	return scripts, target, nil
}
