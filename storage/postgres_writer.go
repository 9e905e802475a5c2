package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"yield-optimizer/models"
	"yield-optimizer/utils"
)

const (
	insertBatchSize = 50
	columnsPerRow   = 13
)

// PostgresWriter persists the ranking of a run to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, pings it under the given
// retry policy, runs schema migrations and returns a ready-to-use writer.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

// deal_score is unbounded: weights need not sum to 1.
const scoredListingsSchema = `
		CREATE TABLE IF NOT EXISTS scored_listings (
			id                       SERIAL PRIMARY KEY,
			rank                     INTEGER        NOT NULL,
			deal_score               DOUBLE PRECISION NOT NULL,
			address                  TEXT           UNIQUE NOT NULL,
			zip_code                 VARCHAR(16)    NOT NULL DEFAULT '',
			property_type            VARCHAR(32)    NOT NULL,
			price                    NUMERIC(14,2)  NOT NULL,
			rent_estimate            NUMERIC(10,2)  NOT NULL DEFAULT 0,
			square_footage           NUMERIC(10,1)  NOT NULL DEFAULT 0,
			year_built               INTEGER,
			rent_to_cost_ratio       DOUBLE PRECISION NOT NULL,
			maintenance_risk_score   DOUBLE PRECISION NOT NULL,
			vacancy_adjusted_revenue DOUBLE PRECISION NOT NULL,
			as_of_year               INTEGER        NOT NULL,
			created_at               TIMESTAMPTZ    NOT NULL DEFAULT NOW()
		);

		ALTER TABLE scored_listings ALTER COLUMN deal_score TYPE DOUBLE PRECISION;

		CREATE INDEX IF NOT EXISTS idx_scored_listings_rank     ON scored_listings(rank);
		CREATE INDEX IF NOT EXISTS idx_scored_listings_zip_code ON scored_listings(zip_code);
	`

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, scoredListingsSchema)
	return err
}

// Save replaces the stored ranking with ranked, inside one transaction.
func (pw *PostgresWriter) Save(ctx context.Context, ranked []*models.ScoredListing, asOfYear int) error {
	if len(ranked) == 0 {
		return nil
	}

	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM scored_listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(ranked); i += insertBatchSize {
		end := min(i+insertBatchSize, len(ranked))
		query, args := buildInsert(ranked[i:end], i, asOfYear)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// buildInsert renders one multi-row INSERT. offset is the zero-based position
// of batch[0] in the full ranking.
func buildInsert(batch []*models.ScoredListing, offset, asOfYear int) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*columnsPerRow)

	for idx, sl := range batch {
		base := idx * columnsPerRow
		placeholders := make([]string, columnsPerRow)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		l := sl.Listing
		var year any
		if l.YearBuilt != nil {
			year = *l.YearBuilt
		}
		valueArgs = append(valueArgs,
			offset+idx+1, sl.DealScore, l.Address, l.ZipCode, string(l.PropertyType),
			l.Price, l.RentEstimate, l.SquareFootage, year,
			sl.Features.RentToCostRatio, sl.Features.MaintenanceRiskScore,
			sl.Features.VacancyAdjustedRevenue, asOfYear,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO scored_listings (rank, deal_score, address, zip_code, property_type,
			price, rent_estimate, square_footage, year_built,
			rent_to_cost_ratio, maintenance_risk_score, vacancy_adjusted_revenue, as_of_year)
		VALUES %s
		ON CONFLICT (address) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// FetchTop retrieves the best n stored listings in rank order.
func (pw *PostgresWriter) FetchTop(ctx context.Context, n int) ([]*models.ScoredListing, error) {
	rows, err := pw.db.QueryContext(ctx, `
		SELECT deal_score, address, zip_code, property_type, price, rent_estimate,
		       square_footage, year_built, rent_to_cost_ratio, maintenance_risk_score,
		       vacancy_adjusted_revenue
		FROM scored_listings
		ORDER BY rank
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch top: %w", err)
	}
	defer rows.Close()

	var listings []*models.ScoredListing
	for rows.Next() {
		sl := &models.ScoredListing{}
		var ptype string
		var year sql.NullInt64
		if err := rows.Scan(
			&sl.DealScore, &sl.Listing.Address, &sl.Listing.ZipCode, &ptype,
			&sl.Listing.Price, &sl.Listing.RentEstimate, &sl.Listing.SquareFootage, &year,
			&sl.Features.RentToCostRatio, &sl.Features.MaintenanceRiskScore,
			&sl.Features.VacancyAdjustedRevenue,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		sl.Listing.PropertyType = models.PropertyType(ptype)
		if year.Valid {
			sl.Listing.YearBuilt = models.YearPtr(int(year.Int64))
		}
		listings = append(listings, sl)
	}
	return listings, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
