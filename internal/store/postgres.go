package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/db"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/resilience"
)

// PostgresStore reads order facts from the dw star schema over pgxpool.
type PostgresStore struct {
	pool    db.Pool
	retry   resilience.Policy
	closeFn func()
}

const factSelect = `
SELECT
	f.claim_id, f.part_type_id, f.part_id, f.supplier_id, f.workshop_id, f.insurer_id,
	c.claim_number, pt.name AS part_type, p.name AS part_name,
	s.name AS supplier_name, w.name AS workshop_name,
	COALESCE(f.price, 0) AS price, f.status_category,
	od.date AS order_date, dd.date AS delivery_date, ld.date AS deadline_date,
	COALESCE(f.is_auto_assigned, false), COALESCE(f.is_auto_quoted, false), f.quote_days,
	f.supplier_cancel_reason, f.insurer_reassign_reason, f.manual_quote_reason
FROM dw.fact_orders f
LEFT JOIN dw.dim_claim c ON c.id = f.claim_id
LEFT JOIN dw.dim_part_type pt ON pt.id = f.part_type_id
LEFT JOIN dw.dim_part p ON p.id = f.part_id
LEFT JOIN dw.dim_supplier s ON s.id = f.supplier_id
LEFT JOIN dw.dim_workshop w ON w.id = f.workshop_id
LEFT JOIN dw.dim_date od ON od.id = f.order_date_id
LEFT JOIN dw.dim_date dd ON dd.id = f.delivery_date_id
LEFT JOIN dw.dim_date ld ON ld.id = f.deadline_date_id`

// NewPostgres creates a PostgresStore with a tuned connection pool.
func NewPostgres(ctx context.Context, cfg config.StoreConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if cfg.MaxConns > 0 {
		maxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		minConns = cfg.MinConns
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresWithPool(pool, pool.Close), nil
}

// newPostgresWithPool wires an existing pool; tests inject pgxmock here.
func newPostgresWithPool(pool db.Pool, closeFn func()) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		retry:   resilience.DefaultPolicy(),
		closeFn: closeFn,
	}
}

// FetchOrderFacts runs the flat fact query with the filter's predicates
// applied. Transient warehouse failures are retried with backoff.
func (s *PostgresStore) FetchOrderFacts(ctx context.Context, filter model.FilterSpec) ([]model.OrderFact, error) {
	query := factSelect + ` WHERE true`
	args := []any{}
	argIdx := 1

	if filter.InsurerID != nil {
		query += fmt.Sprintf(` AND f.insurer_id = $%d`, argIdx)
		args = append(args, *filter.InsurerID)
		argIdx++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(` AND od.date >= $%d`, argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(` AND od.date <= $%d`, argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	p := s.retry
	p.OnRetry = resilience.RetryLogger("fetch_order_facts")

	start := time.Now()
	facts, err := resilience.DoVal(ctx, p, func(ctx context.Context) ([]model.OrderFact, error) {
		rows, err := s.pool.Query(ctx, query, args...)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: query order facts")
		}
		defer rows.Close()

		var facts []model.OrderFact
		for rows.Next() {
			f, err := scanFact(rows)
			if err != nil {
				return nil, eris.Wrap(err, "postgres: scan order fact")
			}
			facts = append(facts, f)
		}
		return facts, eris.Wrap(rows.Err(), "postgres: iterate order facts")
	})
	if err != nil {
		return nil, err
	}

	zap.L().Debug("postgres: order facts fetched",
		zap.Int("records", len(facts)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return facts, nil
}

// ListInsurers returns the insurer dimension for the filter dropdown.
func (s *PostgresStore) ListInsurers(ctx context.Context) ([]model.Insurer, error) {
	p := s.retry
	p.OnRetry = resilience.RetryLogger("list_insurers")

	return resilience.DoVal(ctx, p, func(ctx context.Context) ([]model.Insurer, error) {
		rows, err := s.pool.Query(ctx, `SELECT id, name FROM dw.dim_insurer ORDER BY name`)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: query insurers")
		}
		defer rows.Close()

		var insurers []model.Insurer
		for rows.Next() {
			var ins model.Insurer
			if err := rows.Scan(&ins.ID, &ins.Name); err != nil {
				return nil, eris.Wrap(err, "postgres: scan insurer")
			}
			insurers = append(insurers, ins)
		}
		return insurers, eris.Wrap(rows.Err(), "postgres: iterate insurers")
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
