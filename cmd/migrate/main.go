// Command migrate applies the SQL files in the migrations directory that
// have not been recorded in schema_migrations yet.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/ignite/pagecraft/internal/config"
	"github.com/ignite/pagecraft/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	status := flag.Bool("status", false, "print applied and pending migrations and exit")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	dir := cfg.Database.MigrationsDir
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	m := &migrator{db: db, dir: dir}
	if *status {
		err = m.printStatus(ctx, os.Stdout)
	} else {
		var n int
		n, err = m.up(ctx)
		logger.Info("migrations applied", "count", n, "dir", dir)
	}
	if err != nil {
		log.Fatal(err)
	}
}

type migrator struct {
	db  *sql.DB
	dir string
}

const ledgerDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (m *migrator) applied(ctx context.Context) (map[string]bool, error) {
	if _, err := m.db.ExecContext(ctx, ledgerDDL); err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		done[v] = true
	}
	return done, rows.Err()
}

// up applies pending files in order and stops at the first failure. Each
// file and its ledger row commit together.
func (m *migrator) up(ctx context.Context) (int, error) {
	files, err := migrationFiles(m.dir)
	if err != nil {
		return 0, fmt.Errorf("read migrations dir %s: %w", m.dir, err)
	}
	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, f := range files {
		if done[f] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.dir, f))
		if err != nil {
			return n, err
		}
		if err := m.apply(ctx, f, string(data)); err != nil {
			return n, fmt.Errorf("%s: %w", f, err)
		}
		logger.Info("migration applied", "file", f)
		n++
	}
	return n, nil
}

func (m *migrator) apply(ctx context.Context, version, script string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if strings.TrimSpace(script) != "" {
		if _, err := tx.ExecContext(ctx, script); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}

func (m *migrator) printStatus(ctx context.Context, w io.Writer) error {
	files, err := migrationFiles(m.dir)
	if err != nil {
		return err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return err
	}
	pending := 0
	for _, f := range files {
		state := "applied"
		if !done[f] {
			state = "pending"
			pending++
		}
		fmt.Fprintf(w, "%-8s %s\n", state, f)
	}
	fmt.Fprintf(w, "%d pending of %d\n", pending, len(files))
	return nil
}

// migrationFiles returns the .sql files of dir in lexical order.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
