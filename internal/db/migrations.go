package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

type migration struct {
	Version int
	Name    string
	SQL     string
}

// applyMigrations runs every forward-only migration in source that is not
// yet recorded in schema_migrations, each in its own transaction.
func applyMigrations(database *gorm.DB, source fs.FS) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := loadMigrations(source)
	if err != nil {
		return err
	}

	var applied []int
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}

	for _, next := range pending {
		if slices.Contains(applied, next.Version) {
			continue
		}
		if err := applyMigration(database, next); err != nil {
			return err
		}
	}
	return nil
}

func loadMigrations(source fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]migration, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || len(matches) != 2 {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", entry.Name(), err)
		}
		if existing, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, existing, entry.Name())
		}
		seen[version] = entry.Name()

		rawSQL, err := fs.ReadFile(source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, migration{Version: version, Name: entry.Name(), SQL: string(rawSQL)})
	}

	slices.SortFunc(migrations, func(left, right migration) int {
		return left.Version - right.Version
	})
	return migrations, nil
}

func applyMigration(database *gorm.DB, next migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(next.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			exists, err := addedColumnExists(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", next.Name, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", next.Name, statement, err)
			}
		}

		return tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, next.Version, next.Name).Error
	})
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addedColumnExists makes ADD COLUMN statements idempotent: SQLite has no
// ADD COLUMN IF NOT EXISTS.
func addedColumnExists(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}

	tableName := strings.Trim(matches[1], "\"`[]")
	columnName := strings.Trim(matches[2], "\"`[]")

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(tableName, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(column.Name, columnName) {
			return true, nil
		}
	}
	return false, nil
}
