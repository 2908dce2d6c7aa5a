package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSummaryTotals(t *testing.T) {
	cohort := cohortOf(t, map[string]map[string][]string{
		"s1": {"amrfinder": {"blaOXA-23", "blaCTX-M-15"}},
		"s2": {"amrfinder": {"blaOXA-23"}, "bacmet2": {"czcA"}},
		"s3": {},
	})
	cat := NewCategorizer(nil)
	agg := Aggregate(cohort, cat)
	patterns := DiscoverPatterns(cohort, cat)

	sum, err := CompileSummary(cohort, agg, patterns)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.TotalSamples)
	assert.Equal(t, 4, sum.TotalGeneHits)
	assert.Equal(t, 2, sum.CarbapenemasePositive)
	assert.Equal(t, 1, sum.ESBLPositive)
	assert.Equal(t, 0, sum.ColistinPositive)

	amr := sum.DatabaseStats["amrfinder"]
	assert.Equal(t, 2, amr.UniqueGenes)
	assert.Equal(t, 3, amr.TotalOccurrences)
	assert.Equal(t, 2, amr.CriticalGenes)

	env := sum.DatabaseStats["bacmet2"]
	assert.Equal(t, 1, env.UniqueGenes)
	assert.Equal(t, 0, env.CriticalGenes)
}

func TestCompileSummaryShapeMismatch(t *testing.T) {
	cohort := cohortOf(t, map[string]map[string][]string{
		"s1": {"amrfinder": {"blaOXA-23"}},
	})
	cat := NewCategorizer(nil)
	patterns := DiscoverPatterns(cohort, cat)

	// nil upstream stage
	_, err := CompileSummary(cohort, nil, patterns)
	assert.Error(t, err)

	// sample-count disagreement
	agg := Aggregate(cohort, cat)
	agg.TotalSamples = 99
	_, err = CompileSummary(cohort, agg, patterns)
	assert.Error(t, err)

	// record naming a sample the cohort has never seen
	agg = Aggregate(cohort, cat)
	agg.Tables["amrfinder"][0].Samples = []string{"ghost"}
	agg.Tables["amrfinder"][0].Count = 1
	_, err = CompileSummary(cohort, agg, patterns)
	assert.Error(t, err)

	// count disagreeing with the sample list
	agg = Aggregate(cohort, cat)
	agg.Tables["amrfinder"][0].Count = 7
	_, err = CompileSummary(cohort, agg, patterns)
	assert.Error(t, err)

	// coverage and tables disagreeing on the database set
	agg = Aggregate(cohort, cat)
	delete(agg.Coverage, "amrfinder")
	_, err = CompileSummary(cohort, agg, patterns)
	assert.Error(t, err)
}

// The four-sample scenario: A carries a carbapenemase plus a colistin
// gene, B the carbapenemase alone, C colistin plus tigecycline, D
// nothing at all.
func TestAnalyzeEndToEnd(t *testing.T) {
	records := []SampleRecord{
		{SampleID: "A", GeneHits: []GeneHitRecord{hit("blaOXA-23", "amrfinder"), hit("mcr-1", "amrfinder")}},
		{SampleID: "B", GeneHits: []GeneHitRecord{hit("blaOXA-23", "amrfinder")}},
		{SampleID: "C", GeneHits: []GeneHitRecord{hit("mcr-1", "amrfinder"), hit("tetX", "amrfinder")}},
		{SampleID: "D"},
	}

	sum, warnings, err := Analyze(records, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)

	assert.Equal(t, 4, sum.TotalSamples)
	assert.Equal(t, 5, sum.TotalGeneHits)

	table := sum.Tables["amrfinder"]
	require.Len(t, table, 3)
	byGene := map[string]GeneFrequencyRecord{}
	for _, rec := range table {
		byGene[rec.Gene] = rec
	}

	assert.Equal(t, 2, byGene["blaOXA-23"].Count)
	assert.InDelta(t, 50.0, byGene["blaOXA-23"].Percentage, 1e-9)
	assert.Equal(t, []string{"A", "B"}, byGene["blaOXA-23"].Samples)

	assert.Equal(t, 2, byGene["mcr-1"].Count)
	assert.InDelta(t, 50.0, byGene["mcr-1"].Percentage, 1e-9)

	assert.Equal(t, 1, byGene["tetX"].Count)
	assert.InDelta(t, 25.0, byGene["tetX"].Percentage, 1e-9)

	// Only A is high-risk: carbapenemase plus colistin resistance. C has
	// mcr-1 but no carbapenemase.
	require.Len(t, sum.Patterns.HighRisk, 1)
	assert.Equal(t, "A", sum.Patterns.HighRisk[0].SampleID)

	// Nobody reaches three critical buckets.
	assert.Empty(t, sum.Patterns.MDR)
	assert.Equal(t, 0, sum.MDRSamples)
	assert.Equal(t, 1, sum.HighRiskSamples)

	assert.Equal(t, 2, sum.CarbapenemasePositive)
	assert.Equal(t, 2, sum.ColistinPositive)
	assert.Equal(t, 1, sum.TigecyclinePositive)

	cov := sum.Coverage["amrfinder"]
	assert.Equal(t, 3, cov.SamplesWithHits)
	assert.Equal(t, 4, cov.TotalSamples)
	assert.InDelta(t, 75.0, cov.CoveragePct, 1e-9)
}
