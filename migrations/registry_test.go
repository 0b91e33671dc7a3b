package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	ledger "github.com/goliatone/go-ledger"
	_ "github.com/mattn/go-sqlite3"
)

func TestFilesystems_ReturnsPostgresAndSQLite(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}

	var postgresFound bool
	var sqliteFound bool
	for _, entry := range filesystems {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		switch entry.Dialect {
		case DialectPostgres:
			postgresFound = true
		case DialectSQLite:
			sqliteFound = true
		}
	}

	if !postgresFound {
		t.Fatalf("expected postgres filesystem")
	}
	if !sqliteFound {
		t.Fatalf("expected sqlite filesystem")
	}
}

func TestRegister_UsesValidationTargets(t *testing.T) {
	var calls []string
	_, err := Register(context.Background(), func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		calls = append(calls, dialect)
		return nil
	}, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 registration call, got %d", len(calls))
	}
	if calls[0] != DialectSQLite {
		t.Fatalf("expected sqlite registration, got %q", calls[0])
	}
}

func TestLedgerCoreMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := ledger.GetCoreMigrationsFS()
	paths := []string{
		"data/sql/migrations/20260101000000_ledger_core.up.sql",
		"data/sql/migrations/20260101000000_ledger_core.down.sql",
		"data/sql/migrations/sqlite/20260101000000_ledger_core.up.sql",
		"data/sql/migrations/sqlite/20260101000000_ledger_core.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}

func TestSQLiteLedgerCoreMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-ledger-core?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()

	root := ledger.GetCoreMigrationsFS()
	sqliteMigrations, err := fs.Sub(root, "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}

	ctx := context.Background()
	if err := execSQLMigration(ctx, db, sqliteMigrations, "20260101000000_ledger_core.up.sql"); err != nil {
		t.Fatalf("apply ledger core migration up: %v", err)
	}

	insertAccount := `
		INSERT INTO ledger_accounts (id, number, owner_id, kind, balance, credit_limit, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.ExecContext(ctx, insertAccount, "acc-1", "111222333444", "owner-1", "checking", 1000, 0, "active"); err != nil {
		t.Fatalf("insert account: %v", err)
	}
	if _, err := db.ExecContext(ctx, insertAccount, "acc-2", "111222333444", "owner-2", "checking", 0, 0, "active"); err == nil {
		t.Fatalf("expected unique account number violation")
	}

	insertClaim := `
		INSERT INTO ledger_transfer_idempotency (id, owner_id, source_account_id, idempotency_key, entry_id)
		VALUES (?, ?, ?, ?, ?)
	`
	insertEntry := `
		INSERT INTO ledger_entries (id, owner_id, account_id, kind, amount, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.ExecContext(ctx, insertEntry, "ent-1", "owner-1", "acc-1", "transfer", 300, "completed"); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	if _, err := db.ExecContext(ctx, insertClaim, "idm-1", "owner-1", "acc-1", "key-1", "ent-1"); err != nil {
		t.Fatalf("insert idempotency claim: %v", err)
	}
	if _, err := db.ExecContext(ctx, insertClaim, "idm-2", "owner-1", "acc-1", "key-1", "ent-1"); err == nil {
		t.Fatalf("expected unique idempotency tuple violation")
	}

	if err := execSQLMigration(ctx, db, sqliteMigrations, "20260101000000_ledger_core.down.sql"); err != nil {
		t.Fatalf("apply ledger core migration down: %v", err)
	}

	var count int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name LIKE 'ledger_%'",
	).Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite master: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected all ledger tables dropped, got %d", count)
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
