package model

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cohortOf builds a cohort where each entry maps a sample id to its
// per-database gene lists.
func cohortOf(t *testing.T, samples map[string]map[string][]string) *Cohort {
	t.Helper()
	var records []SampleRecord
	for id, byDB := range samples {
		rec := SampleRecord{SampleID: id}
		for db, genes := range byDB {
			for _, g := range genes {
				rec.GeneHits = append(rec.GeneHits, hit(g, db))
			}
		}
		records = append(records, rec)
	}
	cohort, warnings := BuildCohort(records)
	require.Empty(t, warnings)
	return cohort
}

func TestAggregateFrequencies(t *testing.T) {
	cohort := cohortOf(t, map[string]map[string][]string{
		"s1": {"amrfinder": {"blaOXA-23", "sul1"}},
		"s2": {"amrfinder": {"blaOXA-23"}},
		"s3": {"amrfinder": {"blaOXA-23"}},
		"s4": {},
	})

	res := Aggregate(cohort, NewCategorizer(nil))
	require.Equal(t, 4, res.TotalSamples)

	table := res.Tables["amrfinder"]
	require.Len(t, table, 2)

	// count desc, then gene asc
	assert.Equal(t, "blaOXA-23", table[0].Gene)
	assert.Equal(t, 3, table[0].Count)
	assert.InDelta(t, 75.0, table[0].Percentage, 1e-9)
	assert.Equal(t, []string{"s1", "s2", "s3"}, table[0].Samples)
	assert.Equal(t, CategoryCarbapenemase, table[0].Category)
	assert.Equal(t, RiskCritical, table[0].RiskTier)

	assert.Equal(t, "sul1", table[1].Gene)
	assert.Equal(t, 1, table[1].Count)
	assert.InDelta(t, 25.0, table[1].Percentage, 1e-9)
}

// A gene reported for the same sample by multiple hits still counts the
// sample once.
func TestAggregateDistinctSampleCount(t *testing.T) {
	cohort, warnings := BuildCohort([]SampleRecord{{
		SampleID: "s1",
		GeneHits: []GeneHitRecord{hit("sul1", "bacmet2"), hit("sul1", "bacmet2")},
	}})
	require.Empty(t, warnings)

	res := Aggregate(cohort, NewCategorizer(nil))
	require.Len(t, res.Tables["bacmet2"], 1)
	assert.Equal(t, 1, res.Tables["bacmet2"][0].Count)
}

func TestAggregateEmptyCohort(t *testing.T) {
	cohort, _ := BuildCohort(nil)
	res := Aggregate(cohort, NewCategorizer(nil))
	assert.Equal(t, 0, res.TotalSamples)
	assert.Empty(t, res.Tables)
	assert.Empty(t, res.Coverage)

	// percentage is defined as 0 on an empty cohort, never NaN
	assert.Equal(t, 0.0, percentage(0, 0))
	assert.Equal(t, 0.0, percentage(5, 0))
}

func TestAggregateCoverage(t *testing.T) {
	cohort := cohortOf(t, map[string]map[string][]string{
		"s1": {"amrfinder": {"blaOXA-23"}, "vfdb": {"ompA"}},
		"s2": {"amrfinder": {"blaNDM-1"}},
		"s3": {},
		"s4": {},
	})

	res := Aggregate(cohort, NewCategorizer(nil))
	cov := res.Coverage["amrfinder"]
	assert.Equal(t, 2, cov.SamplesWithHits)
	assert.Equal(t, 4, cov.TotalSamples)
	assert.InDelta(t, 50.0, cov.CoveragePct, 1e-9)

	cov = res.Coverage["vfdb"]
	assert.Equal(t, 1, cov.SamplesWithHits)
	assert.InDelta(t, 25.0, cov.CoveragePct, 1e-9)
}

func TestAggregateCoOccurrence(t *testing.T) {
	cohort := cohortOf(t, map[string]map[string][]string{
		"s1": {"amrfinder": {"blaOXA-23", "mcr-1"}},
		"s2": {"amrfinder": {"blaOXA-23", "mcr-1", "sul1"}},
	})

	res := Aggregate(cohort, NewCategorizer(nil))

	want := map[string]int{
		"blaOXA-23|mcr-1": 2,
		"blaOXA-23|sul1":  1,
		"mcr-1|sul1":      1,
	}
	got := map[string]int{}
	for _, pc := range res.CoOccurrence {
		require.Less(t, pc.GeneA, pc.GeneB)
		got[pc.GeneA+"|"+pc.GeneB] = pc.Count
	}
	assert.Equal(t, want, got)

	// highest count first
	assert.Equal(t, 2, res.CoOccurrence[0].Count)
}

// Aggregating the same hit set in different input orders must emit
// byte-identical results.
func TestAggregateOrderingDeterminism(t *testing.T) {
	forward := []SampleRecord{
		{SampleID: "s1", GeneHits: []GeneHitRecord{hit("blaOXA-23", "amrfinder"), hit("sul1", "amrfinder")}},
		{SampleID: "s2", GeneHits: []GeneHitRecord{hit("sul1", "amrfinder"), hit("mcr-1", "amrfinder")}},
		{SampleID: "s3", GeneHits: []GeneHitRecord{hit("mcr-1", "amrfinder")}},
	}
	backward := []SampleRecord{forward[2], forward[1], forward[0]}
	backward[1].GeneHits = []GeneHitRecord{hit("mcr-1", "amrfinder"), hit("sul1", "amrfinder")}

	c1, _ := BuildCohort(forward)
	c2, _ := BuildCohort(backward)

	cat := NewCategorizer(nil)
	j1, err := json.Marshal(Aggregate(c1, cat))
	require.NoError(t, err)
	j2, err := json.Marshal(Aggregate(c2, cat))
	require.NoError(t, err)
	assert.Equal(t, j1, j2)
}

func TestAggregateParallelMatchesSequential(t *testing.T) {
	samples := map[string]map[string][]string{}
	genes := []string{"blaOXA-23", "blaNDM-1", "mcr-1", "sul1", "czcA", "fimH", "tetX"}
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("s%02d", i)
		samples[id] = map[string][]string{
			"amrfinder": {genes[i%len(genes)], genes[(i+2)%len(genes)]},
			"bacmet2":   {genes[(i+4)%len(genes)]},
		}
	}
	cohort := cohortOf(t, samples)
	cat := NewCategorizer(nil)

	seq := Aggregate(cohort, cat)
	for _, workers := range []int{1, 2, 3, 8} {
		par, err := AggregateParallel(context.Background(), cohort, cat, workers)
		require.NoError(t, err)

		j1, err := json.Marshal(seq)
		require.NoError(t, err)
		j2, err := json.Marshal(par)
		require.NoError(t, err)
		assert.Equal(t, j1, j2, "workers=%d", workers)
	}

	_, err := AggregateParallel(context.Background(), cohort, cat, 0)
	assert.Error(t, err)
}

func TestAggregateCategoryTables(t *testing.T) {
	cohort := cohortOf(t, map[string]map[string][]string{
		"s1": {"amrfinder": {"blaOXA-23"}, "resfinder": {"blaNDM-1"}},
		"s2": {"amrfinder": {"blaOXA-23"}},
	})

	res := Aggregate(cohort, NewCategorizer(nil))
	carb := res.Categories[CategoryCarbapenemase]
	require.Len(t, carb, 2)
	assert.Equal(t, "blaOXA-23", carb[0].Gene) // count 2 first
	assert.Equal(t, "blaNDM-1", carb[1].Gene)

	require.Len(t, res.Combined, 2)
	assert.Equal(t, "blaOXA-23", res.Combined[0].Gene)
}
