package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearbill/assess/internal/export"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS assess_submissions (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			name TEXT NOT NULL DEFAULT '',
			email TEXT,
			organization TEXT,
			segment TEXT NOT NULL,
			answers JSONB NOT NULL DEFAULT '{}',
			overall INT NOT NULL,
			categories JSONB NOT NULL DEFAULT '[]',
			annual_billing DOUBLE PRECISION NOT NULL DEFAULT 0,
			ar_days DOUBLE PRECISION NOT NULL DEFAULT 0,
			cash_in_ar BIGINT NOT NULL DEFAULT 0,
			total_opportunity BIGINT NOT NULL DEFAULT 0,
			bad_debt_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			current_bad_debt BIGINT NOT NULL DEFAULT 0,
			resiliency_index INT NOT NULL DEFAULT 0,
			resiliency_level TEXT NOT NULL DEFAULT '',
			projected_index INT NOT NULL DEFAULT 0,
			projected_improvement INT NOT NULL DEFAULT 0,
			forces JSONB,
			version TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS assess_submissions_segment_idx
			ON assess_submissions (segment);
		CREATE INDEX IF NOT EXISTS assess_submissions_created_at_idx
			ON assess_submissions (created_at DESC)`)
	return err
}

const submissionColumns = `id, created_at, name, email, organization, segment, answers,
	overall, categories,
	annual_billing, ar_days, cash_in_ar, total_opportunity, bad_debt_rate, current_bad_debt,
	resiliency_index, resiliency_level, projected_index, projected_improvement, forces,
	version`

func (s *PostgresStore) SaveSubmission(ctx context.Context, rec *export.Record) error {
	answersJSON, _ := json.Marshal(rec.Answers)
	categoriesJSON, _ := json.Marshal(rec.Categories)
	forcesJSON, _ := json.Marshal(rec.Forces)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO assess_submissions (`+submissionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21)`,
		rec.ID, rec.Timestamp, rec.Respondent.Name, rec.Respondent.Email, rec.Respondent.Organization,
		rec.Segment, answersJSON,
		rec.Overall, categoriesJSON,
		rec.AnnualBilling, rec.ARDays, rec.CashInAR, rec.TotalFinancialOpportunity,
		rec.BadDebtRate, rec.CurrentBadDebt,
		rec.ResiliencyIndex, rec.ResiliencyLevel, rec.ProjectedIndex, rec.ProjectedImprovement,
		forcesJSON, rec.Version,
	)
	return err
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*export.Record, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+submissionColumns+`
		FROM assess_submissions WHERE id = $1`, id)
	rec, err := scanSubmission(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*export.Record, error) {
	query := `SELECT ` + submissionColumns + ` FROM assess_submissions WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Segment != "" {
		n++
		query += fmt.Sprintf(" AND segment = $%d", n)
		args = append(args, filter.Segment)
	}
	if filter.Since != nil {
		n++
		query += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, *filter.Since)
	}
	if filter.MinScore != nil {
		n++
		query += fmt.Sprintf(" AND overall >= $%d", n)
		args = append(args, *filter.MinScore)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*export.Record
	for rows.Next() {
		rec, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*SubmissionStats, error) {
	stats := &SubmissionStats{BySegment: map[string]int{}}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(overall), 0),
			COALESCE(AVG(resiliency_index), 0),
			COALESCE(SUM(total_opportunity), 0)
		FROM assess_submissions`,
	).Scan(&stats.TotalSubmissions, &stats.AvgOverall, &stats.AvgResiliencyIndex, &stats.TotalOpportunity)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT segment, COUNT(*) FROM assess_submissions GROUP BY segment`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var segment string
		var count int
		if err := rows.Scan(&segment, &count); err != nil {
			return nil, err
		}
		stats.BySegment[segment] = count
	}
	return stats, rows.Err()
}

func scanSubmission(row pgx.Row) (*export.Record, error) {
	rec := &export.Record{}
	var email, organization sql.NullString
	var answersJSON, categoriesJSON, forcesJSON []byte

	err := row.Scan(
		&rec.ID, &rec.Timestamp, &rec.Respondent.Name, &email, &organization,
		&rec.Segment, &answersJSON,
		&rec.Overall, &categoriesJSON,
		&rec.AnnualBilling, &rec.ARDays, &rec.CashInAR, &rec.TotalFinancialOpportunity,
		&rec.BadDebtRate, &rec.CurrentBadDebt,
		&rec.ResiliencyIndex, &rec.ResiliencyLevel, &rec.ProjectedIndex, &rec.ProjectedImprovement,
		&forcesJSON, &rec.Version,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		rec.Respondent.Email = email.String
	}
	if organization.Valid {
		rec.Respondent.Organization = organization.String
	}
	if answersJSON != nil {
		_ = json.Unmarshal(answersJSON, &rec.Answers)
	}
	if categoriesJSON != nil {
		_ = json.Unmarshal(categoriesJSON, &rec.Categories)
	}
	if forcesJSON != nil {
		_ = json.Unmarshal(forcesJSON, &rec.Forces)
	}
	return rec, nil
}
