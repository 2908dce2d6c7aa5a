package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/bbeckley-hub/acinetoscope/pkg/model"
)

func testSummary(t *testing.T) *model.Summary {
	t.Helper()
	records := []model.SampleRecord{
		{SampleID: "A", GeneHits: []model.GeneHitRecord{
			{Gene: "blaOXA-23", Database: "amrfinder", Coverage: 100, Identity: 99},
			{Gene: "mcr-1", Database: "amrfinder", Coverage: 100, Identity: 98},
		}},
		{SampleID: "B", GeneHits: []model.GeneHitRecord{
			{Gene: "blaOXA-23", Database: "amrfinder", Coverage: 100, Identity: 99},
		}},
		{SampleID: "C"},
	}
	sum, warnings, err := model.Analyze(records, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)
	return sum
}

func openTestDB(t *testing.T) *SurveilDB {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1) // one shared in-memory database
	t.Cleanup(func() { sqldb.Close() })

	sdb := NewSurveilDB(sqldb)
	require.NoError(t, sdb.Init(context.Background()))
	return sdb
}

func TestSaveAndReloadRun(t *testing.T) {
	ctx := context.Background()
	sdb := openTestDB(t)
	sum := testSummary(t)

	runID, err := sdb.SaveRun(ctx, sum)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	latest, err := sdb.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Equal(t, runID, latest)

	reloaded, err := sdb.GetSummary(ctx, runID)
	require.NoError(t, err)

	// Round trip must be lossless.
	want, err := json.Marshal(sum)
	require.NoError(t, err)
	got, err := json.Marshal(reloaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestGeneFrequenciesQuery(t *testing.T) {
	ctx := context.Background()
	sdb := openTestDB(t)

	runID, err := sdb.SaveRun(ctx, testSummary(t))
	require.NoError(t, err)

	records, err := sdb.GeneFrequencies(ctx, runID, "amrfinder")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// emission order: count desc, gene asc
	assert.Equal(t, "blaOXA-23", records[0].Gene)
	assert.Equal(t, 2, records[0].Count)
	assert.Equal(t, []string{"A", "B"}, records[0].Samples)
	assert.Equal(t, model.CategoryCarbapenemase, records[0].Category)
	assert.Equal(t, "amrfinder", records[0].Database)

	assert.Equal(t, "mcr-1", records[1].Gene)
	assert.Equal(t, 1, records[1].Count)

	none, err := sdb.GeneFrequencies(ctx, runID, "no-such-db")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLatestRunIDEmpty(t *testing.T) {
	sdb := openTestDB(t)
	_, err := sdb.LatestRunID(context.Background())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
