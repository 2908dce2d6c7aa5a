// Handlers serving stored analysis results to downstream renderers.

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bbeckley-hub/acinetoscope/logger"
)

// resolveRunID maps the "latest" alias (or an empty id) to the most
// recent stored run.
func (c *DBContext) resolveRunID(r *http.Request, raw string) (string, error) {
	if raw == "" || raw == "latest" {
		return c.Surveil_DB.LatestRunID(r.Context())
	}
	return raw, nil
}

// GET /api/v1/runs/{run_id}/summary
func (c *DBContext) RunSummary(w http.ResponseWriter, r *http.Request) {
	runID, err := c.resolveRunID(r, r.PathValue("run_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "no analysis runs stored", http.StatusNotFound)
			return
		}
		logger.Error("resolve run id", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sum, err := c.Surveil_DB.GetSummary(r.Context(), runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		logger.Error("load summary", zap.String("run_id", runID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sum); err != nil {
		logger.Error("encode summary", zap.Error(err))
	}
}

// GET /api/v1/runs/{run_id}/frequencies/{database}
func (c *DBContext) GeneFrequencyTable(w http.ResponseWriter, r *http.Request) {
	runID, err := c.resolveRunID(r, r.PathValue("run_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "no analysis runs stored", http.StatusNotFound)
			return
		}
		logger.Error("resolve run id", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	dbName := r.PathValue("database")
	records, err := c.Surveil_DB.GeneFrequencies(r.Context(), runID, dbName)
	if err != nil {
		logger.Error("load gene frequencies",
			zap.String("run_id", runID), zap.String("database", dbName), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		logger.Error("encode gene frequencies", zap.Error(err))
	}
}
