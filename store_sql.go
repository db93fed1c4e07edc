package hashcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type sqlStore struct {
	db         *sql.DB
	table      string
	driverName string
	getStmt    *sql.Stmt
	upsertStmt *sql.Stmt
	existsStmt *sql.Stmt
	deleteStmt *sql.Stmt
	clearStmt  *sql.Stmt
	countStmt  *sql.Stmt
}

var sqlIdentPartRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func newSQLStore(cfg StoreConfig) (Store, error) {
	if cfg.SQLDriverName == "" || cfg.SQLDSN == "" {
		return nil, errors.New("hashcache: sql driver requires driver name and dsn")
	}
	db, err := sql.Open(cfg.SQLDriverName, cfg.SQLDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	table := cfg.SQLTable
	if table == "" {
		table = "hash_entries"
	}
	if err := validateSQLTableName(table); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &sqlStore{
		db:         db,
		table:      table,
		driverName: cfg.SQLDriverName,
	}
	if err := s.ensureSchema(); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := s.prepareStatements(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqlStore) Driver() Driver { return DriverSQL }

func (s *sqlStore) ensureSchema() error {
	var stmt string
	switch s.driverName {
	case "postgres", "pgx":
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k TEXT PRIMARY KEY,
			v BYTEA NOT NULL
		);`, s.table)
	case "mysql":
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k VARBINARY(255) PRIMARY KEY,
			v LONGBLOB NOT NULL
		) ENGINE=InnoDB;`, s.table)
	default: // sqlite
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k TEXT PRIMARY KEY,
			v BLOB NOT NULL
		);`, s.table)
	}
	_, err := s.db.Exec(stmt)
	return err
}

func (s *sqlStore) Set(ctx context.Context, digest string, value []byte) error {
	_, err := s.upsertStmt.ExecContext(ctx, digest, value, value)
	return err
}

func (s *sqlStore) Get(ctx context.Context, digest string) ([]byte, error) {
	var v []byte
	err := s.getStmt.QueryRowContext(ctx, digest).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cloneBytes(v), nil
}

func (s *sqlStore) Contains(ctx context.Context, digest string) (bool, error) {
	var one int
	err := s.existsStmt.QueryRowContext(ctx, digest).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *sqlStore) Delete(ctx context.Context, digest string) error {
	res, err := s.deleteStmt.ExecContext(ctx, digest)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlStore) Clear(ctx context.Context) error {
	_, err := s.clearStmt.ExecContext(ctx)
	return err
}

func (s *sqlStore) Keys(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT k FROM %s", s.table))
		if err != nil {
			yield("", err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			var k string
			if err := rows.Scan(&k); err != nil {
				yield("", err)
				return
			}
			if !yield(k, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield("", err)
		}
	}
}

func (s *sqlStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.countStmt.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *sqlStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.upsertStmt, s.existsStmt, s.deleteStmt, s.clearStmt, s.countStmt} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	return s.db.Close()
}

func (s *sqlStore) upsertSQL() string {
	// Placeholders must be positional for postgres/pgx.
	p1, p2, p3 := s.ph(1), s.ph(2), s.ph(3)
	switch s.driverName {
	case "postgres", "pgx":
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (%s, %s) ON CONFLICT (k) DO UPDATE SET v = %s", s.table, p1, p2, p3)
	case "mysql":
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (%s, %s) ON DUPLICATE KEY UPDATE v = %s", s.table, p1, p2, p3)
	default: // sqlite
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (%s, %s) ON CONFLICT(k) DO UPDATE SET v = %s", s.table, p1, p2, p3)
	}
}

func (s *sqlStore) prepareStatements() error {
	var err error
	if s.getStmt, err = s.db.Prepare(fmt.Sprintf("SELECT v FROM %s WHERE k = %s", s.table, s.ph(1))); err != nil {
		return err
	}
	if s.upsertStmt, err = s.db.Prepare(s.upsertSQL()); err != nil {
		return err
	}
	if s.existsStmt, err = s.db.Prepare(fmt.Sprintf("SELECT 1 FROM %s WHERE k = %s", s.table, s.ph(1))); err != nil {
		return err
	}
	if s.deleteStmt, err = s.db.Prepare(fmt.Sprintf("DELETE FROM %s WHERE k = %s", s.table, s.ph(1))); err != nil {
		return err
	}
	if s.clearStmt, err = s.db.Prepare(fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return err
	}
	if s.countStmt, err = s.db.Prepare(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)); err != nil {
		return err
	}
	return nil
}

func (s *sqlStore) ph(i int) string {
	if s.driverName == "postgres" || s.driverName == "pgx" {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func validateSQLTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("hashcache: sql table name is required")
	}
	for _, part := range strings.Split(name, ".") {
		if !sqlIdentPartRE.MatchString(part) {
			return fmt.Errorf("hashcache: invalid sql table name %q", name)
		}
	}
	return nil
}
