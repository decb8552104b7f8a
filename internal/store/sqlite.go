package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/partsight/insight-cli/internal/model"
)

// SQLiteStore reads order facts from a flat local fixture database. It
// exists for development and demos; the fixture table carries the dimension
// names inline instead of the warehouse's star schema.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS order_facts (
	id                      INTEGER PRIMARY KEY AUTOINCREMENT,
	claim_id                INTEGER,
	part_type_id            INTEGER,
	part_id                 INTEGER,
	supplier_id             INTEGER,
	workshop_id             INTEGER,
	insurer_id              INTEGER,
	claim_number            TEXT,
	part_type               TEXT,
	part_name               TEXT,
	supplier_name           TEXT,
	workshop_name           TEXT,
	price                   REAL NOT NULL DEFAULT 0,
	status_category         TEXT NOT NULL DEFAULT 'Pending',
	order_date              DATETIME,
	delivery_date           DATETIME,
	deadline_date           DATETIME,
	is_auto_assigned        INTEGER NOT NULL DEFAULT 0,
	is_auto_quoted          INTEGER NOT NULL DEFAULT 0,
	quote_days              REAL,
	supplier_cancel_reason  TEXT,
	insurer_reassign_reason TEXT,
	manual_quote_reason     TEXT
);

CREATE INDEX IF NOT EXISTS idx_order_facts_insurer ON order_facts(insurer_id);
CREATE INDEX IF NOT EXISTS idx_order_facts_order_date ON order_facts(order_date);
CREATE INDEX IF NOT EXISTS idx_order_facts_supplier ON order_facts(supplier_id);

CREATE TABLE IF NOT EXISTS insurers (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
`

// NewSQLite opens (or creates) the fixture database at the given path,
// configures WAL mode, and ensures the schema exists.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqldb.Exec(pragma); err != nil {
			sqldb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	if _, err := sqldb.Exec(sqliteSchema); err != nil {
		sqldb.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}
	return &SQLiteStore{db: sqldb}, nil
}

const sqliteFactSelect = `
SELECT
	claim_id, part_type_id, part_id, supplier_id, workshop_id, insurer_id,
	claim_number, part_type, part_name, supplier_name, workshop_name,
	price, status_category,
	order_date, delivery_date, deadline_date,
	is_auto_assigned, is_auto_quoted, quote_days,
	supplier_cancel_reason, insurer_reassign_reason, manual_quote_reason
FROM order_facts`

// FetchOrderFacts runs the fixture query with the filter's predicates.
func (s *SQLiteStore) FetchOrderFacts(ctx context.Context, filter model.FilterSpec) ([]model.OrderFact, error) {
	query := sqliteFactSelect + ` WHERE 1=1`
	args := []any{}

	if filter.InsurerID != nil {
		query += ` AND insurer_id = ?`
		args = append(args, *filter.InsurerID)
	}
	if filter.StartDate != nil {
		query += ` AND order_date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND order_date <= ?`
		args = append(args, *filter.EndDate)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query order facts")
	}
	defer rows.Close()

	var facts []model.OrderFact
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan order fact")
		}
		facts = append(facts, f)
	}
	return facts, eris.Wrap(rows.Err(), "sqlite: iterate order facts")
}

// ListInsurers returns the fixture's insurer rows.
func (s *SQLiteStore) ListInsurers(ctx context.Context) ([]model.Insurer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM insurers ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query insurers")
	}
	defer rows.Close()

	var insurers []model.Insurer
	for rows.Next() {
		var ins model.Insurer
		if err := rows.Scan(&ins.ID, &ins.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan insurer")
		}
		insurers = append(insurers, ins)
	}
	return insurers, eris.Wrap(rows.Err(), "sqlite: iterate insurers")
}

// SeedFacts inserts fact rows into the fixture, one transaction for the
// whole batch.
func (s *SQLiteStore) SeedFacts(ctx context.Context, facts []model.OrderFact) error {
	if len(facts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin seed")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_facts (
			claim_id, part_type_id, part_id, supplier_id, workshop_id, insurer_id,
			claim_number, part_type, part_name, supplier_name, workshop_name,
			price, status_category,
			order_date, delivery_date, deadline_date,
			is_auto_assigned, is_auto_quoted, quote_days,
			supplier_cancel_reason, insurer_reassign_reason, manual_quote_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare seed")
	}
	defer stmt.Close()

	for i := range facts {
		f := &facts[i]
		if _, err := stmt.ExecContext(ctx,
			f.ClaimID, f.PartTypeID, f.PartID, f.SupplierID, f.WorkshopID, f.InsurerID,
			emptyToNull(f.ClaimNumber), emptyToNull(f.PartType), emptyToNull(f.PartName),
			emptyToNull(f.SupplierName), emptyToNull(f.WorkshopName),
			f.Price, string(f.StatusCategory),
			f.OrderDate, f.DeliveryDate, f.DeadlineDate,
			f.IsAutoAssigned, f.IsAutoQuoted, f.QuoteDays,
			f.SupplierCancelReason, f.InsurerReassignReason, f.ManualQuoteReason,
		); err != nil {
			return eris.Wrap(err, "sqlite: insert order fact")
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit seed")
}

// SeedInsurers upserts insurer rows into the fixture.
func (s *SQLiteStore) SeedInsurers(ctx context.Context, insurers []model.Insurer) error {
	for _, ins := range insurers {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO insurers (id, name) VALUES (?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
			ins.ID, ins.Name,
		); err != nil {
			return eris.Wrapf(err, "sqlite: seed insurer %d", ins.ID)
		}
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func emptyToNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
