// Persistence for analysis runs. Each run is stored both as relational
// gene-frequency rows for querying and as the full summary JSON so
// downstream renderers get the exact structure back.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bbeckley-hub/acinetoscope/pkg/model"
)

type SurveilDB struct {
	sqldb *sql.DB
}

func NewSurveilDB(sqldb *sql.DB) *SurveilDB {
	return &SurveilDB{sqldb: sqldb}
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id          TEXT PRIMARY KEY,
	created_at      TEXT NOT NULL,
	total_samples   INTEGER NOT NULL,
	total_gene_hits INTEGER NOT NULL,
	high_risk       INTEGER NOT NULL,
	mdr             INTEGER NOT NULL,
	summary_json    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gene_frequencies (
	run_id     TEXT NOT NULL REFERENCES analysis_runs(run_id),
	db_name    TEXT NOT NULL,
	gene       TEXT NOT NULL,
	category   TEXT NOT NULL,
	hit_count  INTEGER NOT NULL,
	percentage REAL NOT NULL,
	risk_tier  TEXT NOT NULL,
	samples    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS database_coverage (
	run_id            TEXT NOT NULL REFERENCES analysis_runs(run_id),
	db_name           TEXT NOT NULL,
	samples_with_hits INTEGER NOT NULL,
	total_samples     INTEGER NOT NULL,
	coverage_pct      REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_gene_frequencies_run ON gene_frequencies(run_id, db_name);
`

// Init creates the schema if it does not exist yet.
func (s *SurveilDB) Init(ctx context.Context) error {
	if _, err := s.sqldb.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveRun stores a compiled summary under a fresh run id and returns
// the id.
func (s *SurveilDB) SaveRun(ctx context.Context, sum *model.Summary) (string, error) {
	runID := uuid.New().String()

	summaryJSON, err := json.Marshal(sum)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	tx, err := s.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analysis_runs (run_id, created_at, total_samples, total_gene_hits, high_risk, mdr, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), sum.TotalSamples, sum.TotalGeneHits,
		sum.HighRiskSamples, sum.MDRSamples, string(summaryJSON))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stm, err := tx.PrepareContext(ctx,
		`INSERT INTO gene_frequencies (run_id, db_name, gene, category, hit_count, percentage, risk_tier, samples)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare gene_frequencies: %w", err)
	}
	defer stm.Close()

	for dbName, records := range sum.Tables {
		for _, rec := range records {
			samples, err := json.Marshal(rec.Samples)
			if err != nil {
				return "", fmt.Errorf("marshal samples for %s: %w", rec.Gene, err)
			}
			if _, err := stm.ExecContext(ctx, runID, dbName, rec.Gene, string(rec.Category),
				rec.Count, rec.Percentage, rec.RiskTier, string(samples)); err != nil {
				return "", fmt.Errorf("insert gene %s: %w", rec.Gene, err)
			}
		}
	}

	covStm, err := tx.PrepareContext(ctx,
		`INSERT INTO database_coverage (run_id, db_name, samples_with_hits, total_samples, coverage_pct)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare database_coverage: %w", err)
	}
	defer covStm.Close()

	for dbName, cov := range sum.Coverage {
		if _, err := covStm.ExecContext(ctx, runID, dbName,
			cov.SamplesWithHits, cov.TotalSamples, cov.CoveragePct); err != nil {
			return "", fmt.Errorf("insert coverage %s: %w", dbName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// LatestRunID returns the most recently stored run, or sql.ErrNoRows
// when nothing has been saved yet.
func (s *SurveilDB) LatestRunID(ctx context.Context) (string, error) {
	var runID string
	err := s.sqldb.QueryRowContext(ctx,
		`SELECT run_id FROM analysis_runs ORDER BY created_at DESC, run_id DESC LIMIT 1`).Scan(&runID)
	if err != nil {
		return "", err
	}
	return runID, nil
}

// GetSummary reloads the full compiled summary of a run.
func (s *SurveilDB) GetSummary(ctx context.Context, runID string) (*model.Summary, error) {
	var raw string
	err := s.sqldb.QueryRowContext(ctx,
		`SELECT summary_json FROM analysis_runs WHERE run_id = ?`, runID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	var sum model.Summary
	if err := json.Unmarshal([]byte(raw), &sum); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return &sum, nil
}

// GeneFrequencies returns the stored frequency table of one database
// within a run, in the emission order (count desc, gene asc).
func (s *SurveilDB) GeneFrequencies(ctx context.Context, runID, database string) ([]model.GeneFrequencyRecord, error) {
	stm, err := s.sqldb.PrepareContext(ctx,
		`SELECT gene, category, hit_count, percentage, risk_tier, samples
		 FROM gene_frequencies
		 WHERE run_id = ? AND db_name = ?
		 ORDER BY hit_count DESC, gene ASC`)
	if err != nil {
		return nil, fmt.Errorf("prepare query: %w", err)
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, runID, database)
	if err != nil {
		return nil, fmt.Errorf("query gene frequencies: %w", err)
	}
	defer rows.Close()

	var records []model.GeneFrequencyRecord
	for rows.Next() {
		var rec model.GeneFrequencyRecord
		var category, samples string
		if err := rows.Scan(&rec.Gene, &category, &rec.Count, &rec.Percentage, &rec.RiskTier, &samples); err != nil {
			return nil, fmt.Errorf("scan gene frequency row: %w", err)
		}
		rec.Category = model.Category(category)
		rec.Database = database
		if err := json.Unmarshal([]byte(samples), &rec.Samples); err != nil {
			return nil, fmt.Errorf("decode samples for %s: %w", rec.Gene, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
