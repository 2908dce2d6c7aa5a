package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/bbeckley-hub/acinetoscope/internal/util"
	"github.com/bbeckley-hub/acinetoscope/logger"
	surveildb "github.com/bbeckley-hub/acinetoscope/pkg/db"
	"github.com/bbeckley-hub/acinetoscope/pkg/handler"
	"github.com/bbeckley-hub/acinetoscope/pkg/middle"
	"github.com/bbeckley-hub/acinetoscope/pkg/model"
	"github.com/bbeckley-hub/acinetoscope/pkg/report"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

var (
	acineto_data string
)

func main() {

	VERSION := "0.2.0"

	// Try load env before the logger so LOG_LEVEL applies
	dotenvErr := godotenv.Load()

	if err := logger.InitLogger(logger.ParseLevel(os.Getenv("LOG_LEVEL"))); err != nil {
		panic(err)
	}

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	acineto_data = os.Getenv("ACINETO_DATA")

	if acineto_data == "" {
		logger.Warn("No local environment (ACINETO_DATA), using default value (./data)")
		acineto_data = "./data"
	}

	samples_json := path.Join(acineto_data, "samples.json")
	reference_yaml := path.Join(acineto_data, "reference_genes.yaml")
	surveil_sqlite := path.Join(acineto_data, "db/surveillance.db")
	reports_dir := path.Join(acineto_data, "reports")

	logger.Info("Start:", zap.String("Version", VERSION))

	summary, runErr := runAnalysis(samples_json, reference_yaml, surveil_sqlite, reports_dir)
	if runErr != nil {
		logger.Fatal("Analysis failed", zap.Error(runErr))
	}

	logger.Info("Cohort analyzed",
		zap.Int("samples", summary.TotalSamples),
		zap.Int("gene_hits", summary.TotalGeneHits),
		zap.Int("high_risk", summary.HighRiskSamples),
		zap.Int("mdr", summary.MDRSamples))

	// Serve stored results for the report frontends
	db, dbErr := sql.Open("sqlite", surveil_sqlite)
	if dbErr != nil {
		logger.Fatal("Cannot reopen surveillance db", zap.Error(dbErr))
	}

	dbctx := &handler.DBContext{
		Surveil_DB: surveildb.NewSurveilDB(db),
	}

	port := os.Getenv("ACINETO_PORT")
	if port == "" {
		port = "8080"
	}

	// Apply middleware
	m := middle.LoggingMiddleware(logger.L())
	mux := m(NewRouter(dbctx))

	logger.Info("Server starting", zap.String("port", port))
	httpErr := http.ListenAndServe("0.0.0.0:"+port, mux)
	if httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}

// runAnalysis reads the adapter-produced sample records, runs the
// engine, persists the run, and writes the export files.
func runAnalysis(samplesPath, referencePath, sqlitePath, reportsDir string) (*model.Summary, error) {

	raw, err := os.ReadFile(samplesPath)
	if err != nil {
		return nil, fmt.Errorf("read sample records: %w", err)
	}

	var records []model.SampleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode sample records: %w", err)
	}

	ref := model.DefaultReferenceLists()
	if _, statErr := os.Stat(referencePath); statErr == nil {
		ref, err = model.LoadReferenceLists(referencePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded reference gene lists", zap.String("path", referencePath))
	}

	summary, warnings, err := model.Analyze(records, ref)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("Malformed record skipped", zap.String("detail", w.String()))
	}

	if err := util.EnsureDir(path.Dir(sqlitePath)); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("open surveillance db: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	sdb := surveildb.NewSurveilDB(db)
	if err := sdb.Init(ctx); err != nil {
		return nil, err
	}
	runID, err := sdb.SaveRun(ctx, summary)
	if err != nil {
		return nil, err
	}
	logger.Info("Run stored", zap.String("run_id", runID), zap.String("db", sqlitePath))

	if err := report.WriteJSON(summary, path.Join(reportsDir, "summary.json")); err != nil {
		return nil, err
	}
	files, err := report.WriteCSVReports(summary, reportsDir)
	if err != nil {
		return nil, err
	}
	logger.Info("Reports written", zap.Int("csv_files", len(files)), zap.String("dir", reportsDir))

	return summary, nil
}

// Move to router.go in the next iteration
func NewRouter(dbctx *handler.DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/runs/{run_id}/summary", dbctx.RunSummary)
	mux.HandleFunc("GET /api/v1/runs/{run_id}/frequencies/{database}", dbctx.GeneFrequencyTable)

	return mux
}
