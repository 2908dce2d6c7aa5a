package model

import "fmt"

// CompileSummary folds the aggregation and pattern outputs, together
// with the cohort, into the single renderer-facing result. It adds no
// logic of its own beyond arithmetic totals, but it does verify that
// the upstream stages agree on shape: a record naming a sample the
// cohort has never seen, or coverage and frequency tables disagreeing
// on the database set, is a bug that must surface as an error rather
// than flow downstream as a silent zero.
func CompileSummary(cohort *Cohort, agg *AggregateResult, patterns *PatternSet) (*Summary, error) {
	if agg == nil || patterns == nil {
		return nil, fmt.Errorf("compile summary: missing upstream stage output")
	}
	if agg.TotalSamples != cohort.TotalSamples() {
		return nil, fmt.Errorf("compile summary: aggregate built over %d samples, cohort has %d",
			agg.TotalSamples, cohort.TotalSamples())
	}

	for db, records := range agg.Tables {
		if _, ok := agg.Coverage[db]; !ok {
			return nil, fmt.Errorf("compile summary: database %q has a frequency table but no coverage entry", db)
		}
		for _, rec := range records {
			if rec.Count != len(rec.Samples) {
				return nil, fmt.Errorf("compile summary: gene %q in %q: count %d != %d listed samples",
					rec.Gene, db, rec.Count, len(rec.Samples))
			}
			for _, id := range rec.Samples {
				if _, ok := cohort.Samples[id]; !ok {
					return nil, fmt.Errorf("compile summary: gene %q in %q names unknown sample %q",
						rec.Gene, db, id)
				}
			}
		}
	}
	for db := range agg.Coverage {
		if _, ok := agg.Tables[db]; !ok {
			return nil, fmt.Errorf("compile summary: database %q has coverage but no frequency table", db)
		}
	}

	sum := &Summary{
		TotalSamples:    cohort.TotalSamples(),
		HighRiskSamples: len(patterns.HighRisk),
		MDRSamples:      len(patterns.MDR),
		DatabaseStats:   make(map[string]DatabaseStats, len(agg.Tables)),
		Tables:          agg.Tables,
		Categories:      agg.Categories,
		Coverage:        agg.Coverage,
		CoOccurrence:    agg.CoOccurrence,
		Patterns:        patterns,
	}

	for _, id := range cohort.SampleIDs {
		sum.TotalGeneHits += len(cohort.Samples[id].Hits)
	}

	for db, records := range agg.Tables {
		stats := DatabaseStats{UniqueGenes: len(records)}
		for _, rec := range records {
			stats.TotalOccurrences += rec.Count
			if rec.Category.Critical() {
				stats.CriticalGenes++
			}
		}
		sum.DatabaseStats[db] = stats
	}

	sum.CarbapenemasePositive = positiveSamples(agg.Categories[CategoryCarbapenemase])
	sum.ESBLPositive = positiveSamples(agg.Categories[CategoryESBL])
	sum.ColistinPositive = positiveSamples(agg.Categories[CategoryColistin])
	sum.TigecyclinePositive = positiveSamples(agg.Categories[CategoryTigecycline])

	return sum, nil
}

// positiveSamples counts the distinct samples across the records of one
// category.
func positiveSamples(records []GeneFrequencyRecord) int {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, id := range rec.Samples {
			seen[id] = true
		}
	}
	return len(seen)
}

// Analyze is the whole engine in one call: normalize and merge the
// input records into a cohort, aggregate, discover patterns, and
// compile the summary. Warnings describe skipped malformed entries and
// come back alongside the normal result.
func Analyze(records []SampleRecord, ref *ReferenceLists) (*Summary, []Warning, error) {
	cohort, warnings := BuildCohort(records)
	cat := NewCategorizer(ref)
	agg := Aggregate(cohort, cat)
	patterns := DiscoverPatterns(cohort, cat)
	sum, err := CompileSummary(cohort, agg, patterns)
	if err != nil {
		return nil, warnings, err
	}
	return sum, warnings, nil
}
