package export

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BenjaminSRussell/siteaudit/internal/audit"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT UNIQUE NOT NULL,
	title TEXT,
	depth1 TEXT,
	depth2 TEXT,
	depth3 TEXT,
	depth4 TEXT,
	audit_status TEXT,
	audit_error TEXT,
	total_violations INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_pages_depth1 ON pages(depth1);

CREATE TABLE IF NOT EXISTS violations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_url TEXT NOT NULL,
	rule_id TEXT NOT NULL,
	impact TEXT NOT NULL,
	kwcag_code TEXT NOT NULL,
	kwcag_seq INTEGER NOT NULL,
	description TEXT,
	help TEXT,
	help_url TEXT,
	node_count INTEGER NOT NULL,
	FOREIGN KEY (page_url) REFERENCES pages(url)
);

CREATE INDEX IF NOT EXISTS idx_violations_page ON violations(page_url);
CREATE INDEX IF NOT EXISTS idx_violations_rule ON violations(rule_id);

CREATE TABLE IF NOT EXISTS nodes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	violation_id INTEGER NOT NULL,
	html TEXT,
	failure_summary TEXT,
	target TEXT,
	FOREIGN KEY (violation_id) REFERENCES violations(id)
);

CREATE TABLE IF NOT EXISTS report (
	key TEXT PRIMARY KEY,
	value TEXT
);
`

// SQLiteStore writes a report into a queryable SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates the database at dbPath, replacing any existing file
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to replace database: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// LoadSQLite opens a database written by ExportSQLite
func LoadSQLite(dbPath string) (*SQLiteStore, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveReport stores every page, violation and node in one transaction
func (s *SQLiteStore) SaveReport(report *types.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	meta := map[string]string{
		"mode":         report.Mode,
		"base_url":     report.BaseURL,
		"generated_at": report.GeneratedAt.Format(time.RFC3339),
	}
	if report.Mode == types.ModeAudit {
		m := reportMetadata(report)
		meta["platform"] = m.Platform
		meta["auditor"] = m.Auditor
		meta["date"] = m.Date
	}
	for key, value := range meta {
		if _, err := tx.Exec("INSERT INTO report (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("failed to save report metadata: %w", err)
		}
	}

	pageStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pages
		(url, title, depth1, depth2, depth3, depth4, audit_status, audit_error, total_violations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer pageStmt.Close()

	violationStmt, err := tx.Prepare(`
		INSERT INTO violations
		(page_url, rule_id, impact, kwcag_code, kwcag_seq, description, help, help_url, node_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer violationStmt.Close()

	nodeStmt, err := tx.Prepare("INSERT INTO nodes (violation_id, html, failure_summary, target) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	if report.Mode != types.ModeAudit {
		for _, p := range report.Pages {
			if _, err := pageStmt.Exec(p.URL, p.Title, p.Depths[0], p.Depths[1], p.Depths[2], p.Depths[3], nil, nil, 0); err != nil {
				return fmt.Errorf("failed to save page %s: %w", p.URL, err)
			}
		}
		return tx.Commit()
	}

	for _, a := range report.Audits {
		if _, err := pageStmt.Exec(a.URL, a.Title, a.Depths[0], a.Depths[1], a.Depths[2], a.Depths[3],
			string(a.AuditStatus), a.AuditError, a.TotalViolations); err != nil {
			return fmt.Errorf("failed to save page %s: %w", a.URL, err)
		}

		for _, v := range a.Violations {
			g := audit.GuidelineFor(v.ID)
			res, err := violationStmt.Exec(a.URL, v.ID, string(v.Impact), g.Code, g.Seq,
				v.Description, v.Help, v.HelpURL, len(v.Nodes))
			if err != nil {
				return fmt.Errorf("failed to save violation %s: %w", v.ID, err)
			}
			violationID, err := res.LastInsertId()
			if err != nil {
				return err
			}

			for _, n := range v.Nodes {
				if _, err := nodeStmt.Exec(violationID, n.HTML, n.FailureSummary, strings.Join(n.Target, ", ")); err != nil {
					return fmt.Errorf("failed to save node: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}

// CountByRule returns how many pages each rule failed on
func (s *SQLiteStore) CountByRule() (map[string]int, error) {
	rows, err := s.db.Query("SELECT rule_id, COUNT(DISTINCT page_url) FROM violations GROUP BY rule_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rule string
		var n int
		if err := rows.Scan(&rule, &n); err != nil {
			return nil, err
		}
		counts[rule] = n
	}
	return counts, rows.Err()
}

// PageCount returns the number of stored pages
func (s *SQLiteStore) PageCount() (int, error) {
	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM pages").Scan(&total)
	return total, err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ExportSQLite writes report into a fresh SQLite database
func (e *Exporter) ExportSQLite(report *types.Report, outputFile string) error {
	store, err := OpenSQLite(outputFile)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveReport(report); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}
	return nil
}
