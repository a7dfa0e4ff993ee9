// internal/infrastructure/persistence/postgres/migrator.go
package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"web3-token-analytics-bot/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration представляет одну миграцию
type Migration struct {
	ID       int
	Name     string
	SQL      string
	Checksum string
}

// Migrator применяет встроенные миграции
type Migrator struct {
	db         *sqlx.DB
	migrations []Migration
}

// NewMigrator создает новый мигратор
func NewMigrator(db *sqlx.DB) *Migrator {
	return &Migrator{db: db}
}

// LoadFS загружает *.sql из каталога файловой системы, упорядочивая по номеру
func (m *Migrator) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	m.migrations = m.migrations[:0]
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		id, name, err := parseMigrationFilename(entry.Name())
		if err != nil {
			return err
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		m.migrations = append(m.migrations, Migration{
			ID:       id,
			Name:     name,
			SQL:      string(content),
			Checksum: calculateChecksum(string(content)),
		})
	}

	sort.Slice(m.migrations, func(i, j int) bool { return m.migrations[i].ID < m.migrations[j].ID })
	return nil
}

// Migrations - загруженные миграции
func (m *Migrator) Migrations() []Migration {
	return m.migrations
}

// Migrate применяет непримененные миграции, каждую в своей транзакции
func (m *Migrator) Migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		checksum TEXT NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]string)
	rows, err := m.db.QueryxContext(ctx, `SELECT id, checksum FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	for rows.Next() {
		var id int
		var checksum string
		if err := rows.Scan(&id, &checksum); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration record: %w", err)
		}
		applied[id] = checksum
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	count := 0
	for _, migration := range m.migrations {
		if checksum, ok := applied[migration.ID]; ok {
			if checksum != migration.Checksum {
				return fmt.Errorf("checksum mismatch for migration %d: %s", migration.ID, migration.Name)
			}
			continue
		}
		if err := m.apply(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %s: %w", migration.ID, migration.Name, err)
		}
		count++
	}

	if count > 0 {
		logger.Info("✅ Применено миграций: %d", count)
	} else {
		logger.Debug("✅ Схема БД актуальна")
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (id, name, checksum) VALUES ($1, $2, $3)`,
		migration.ID, migration.Name, migration.Checksum); err != nil {
		return err
	}
	return tx.Commit()
}

// parseMigrationFilename разбирает имя вида 001_create_deliveries.sql
func parseMigrationFilename(filename string) (int, string, error) {
	base := strings.TrimSuffix(filename, ".sql")
	idPart, name, ok := strings.Cut(base, "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename: %s", filename)
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid migration id in %s", filename)
	}
	return id, name, nil
}

func calculateChecksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
