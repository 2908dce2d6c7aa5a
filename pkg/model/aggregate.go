package model

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// genePair is the internal accumulator key for unordered gene pairs.
type genePair struct {
	a, b string // a < b
}

func makeGenePair(x, y string) genePair {
	if x > y {
		x, y = y, x
	}
	return genePair{a: x, b: y}
}

// partialAggregate is the associative accumulator of the aggregation
// stage. Partials built from disjoint sample subsets merge into the
// same result regardless of grouping or order, which is what makes the
// parallel path safe.
type partialAggregate struct {
	// database -> gene -> set of sample ids
	geneSamples map[string]map[string]map[string]bool
	// database -> set of sample ids with >=1 hit
	dbSamples map[string]map[string]bool
	pairs     map[genePair]int
}

func newPartialAggregate() *partialAggregate {
	return &partialAggregate{
		geneSamples: make(map[string]map[string]map[string]bool),
		dbSamples:   make(map[string]map[string]bool),
		pairs:       make(map[genePair]int),
	}
}

// addSample folds one sample into the partial.
func (p *partialAggregate) addSample(s *Sample) {
	for _, h := range s.Hits {
		byGene, ok := p.geneSamples[h.Database]
		if !ok {
			byGene = make(map[string]map[string]bool)
			p.geneSamples[h.Database] = byGene
		}
		set, ok := byGene[h.Gene]
		if !ok {
			set = make(map[string]bool)
			byGene[h.Gene] = set
		}
		set[s.ID] = true

		dbSet, ok := p.dbSamples[h.Database]
		if !ok {
			dbSet = make(map[string]bool)
			p.dbSamples[h.Database] = dbSet
		}
		dbSet[s.ID] = true
	}

	// Unordered gene pairs co-occurring within this sample. The gene
	// set is distinct across databases, so a gene hit by two tools
	// still forms each pair once per sample.
	genes := s.GeneSet()
	for i, g1 := range genes {
		for _, g2 := range genes[i+1:] {
			p.pairs[makeGenePair(g1, g2)]++
		}
	}
}

// merge folds another partial into p. Merging is associative and
// commutative as long as the inputs were built from disjoint samples.
func (p *partialAggregate) merge(q *partialAggregate) {
	for db, byGene := range q.geneSamples {
		dst, ok := p.geneSamples[db]
		if !ok {
			p.geneSamples[db] = byGene
			continue
		}
		for gene, set := range byGene {
			if cur, ok := dst[gene]; ok {
				for id := range set {
					cur[id] = true
				}
			} else {
				dst[gene] = set
			}
		}
	}
	for db, set := range q.dbSamples {
		if cur, ok := p.dbSamples[db]; ok {
			for id := range set {
				cur[id] = true
			}
		} else {
			p.dbSamples[db] = set
		}
	}
	for pair, n := range q.pairs {
		p.pairs[pair] += n
	}
}

// finalize turns the accumulated sets into the emitted result. All
// ordering happens here, never earlier, so the output is byte-stable
// no matter how the partials were produced.
func (p *partialAggregate) finalize(cat *Categorizer, totalSamples int) *AggregateResult {
	res := &AggregateResult{
		Tables:       make(map[string][]GeneFrequencyRecord, len(p.geneSamples)),
		Categories:   make(map[Category][]GeneFrequencyRecord),
		Coverage:     make(map[string]DatabaseCoverage, len(p.dbSamples)),
		TotalSamples: totalSamples,
	}

	for db, byGene := range p.geneSamples {
		records := make([]GeneFrequencyRecord, 0, len(byGene))
		for gene, set := range byGene {
			ids := make([]string, 0, len(set))
			for id := range set {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			category := cat.Categorize(gene)
			records = append(records, GeneFrequencyRecord{
				Gene:       gene,
				Category:   category,
				Database:   db,
				Count:      len(ids),
				Percentage: percentage(len(ids), totalSamples),
				Samples:    ids,
				RiskTier:   RiskTier(category),
			})
		}
		sortRecords(records)
		res.Tables[db] = records

		for _, rec := range records {
			res.Categories[rec.Category] = append(res.Categories[rec.Category], rec)
			res.Combined = append(res.Combined, rec)
		}
	}

	for _, records := range res.Categories {
		sortRecords(records)
	}
	sortRecords(res.Combined)

	for db, set := range p.dbSamples {
		res.Coverage[db] = DatabaseCoverage{
			SamplesWithHits: len(set),
			TotalSamples:    totalSamples,
			CoveragePct:     percentage(len(set), totalSamples),
		}
	}

	res.CoOccurrence = make([]GenePairCount, 0, len(p.pairs))
	for pair, n := range p.pairs {
		res.CoOccurrence = append(res.CoOccurrence, GenePairCount{GeneA: pair.a, GeneB: pair.b, Count: n})
	}
	sort.Slice(res.CoOccurrence, func(i, j int) bool {
		a, b := res.CoOccurrence[i], res.CoOccurrence[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.GeneA != b.GeneA {
			return a.GeneA < b.GeneA
		}
		return a.GeneB < b.GeneB
	})

	return res
}

// sortRecords applies the emission contract: count descending, ties by
// gene ascending, then database ascending for cross-database views.
func sortRecords(records []GeneFrequencyRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count > records[j].Count
		}
		if records[i].Gene != records[j].Gene {
			return records[i].Gene < records[j].Gene
		}
		return records[i].Database < records[j].Database
	})
}

// percentage is 100*count/total, defined as 0 for an empty cohort.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}

// Aggregate builds the cross-genome frequency, co-occurrence and
// coverage tables for the cohort.
func Aggregate(cohort *Cohort, cat *Categorizer) *AggregateResult {
	p := newPartialAggregate()
	for _, id := range cohort.SampleIDs {
		p.addSample(cohort.Samples[id])
	}
	return p.finalize(cat, cohort.TotalSamples())
}

// AggregateParallel is the map/reduce form of Aggregate: samples are
// split across workers, each worker folds its share into a private
// partial, and the partials merge on the caller goroutine. Output is
// identical to the sequential form because ordering is applied only at
// emission.
func AggregateParallel(ctx context.Context, cohort *Cohort, cat *Categorizer, workers int) (*AggregateResult, error) {
	if workers < 1 {
		return nil, fmt.Errorf("aggregate: workers must be >= 1, got %d", workers)
	}
	if workers == 1 || len(cohort.SampleIDs) <= 1 {
		return Aggregate(cohort, cat), nil
	}

	partials := make([]*partialAggregate, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			p := newPartialAggregate()
			for i := w; i < len(cohort.SampleIDs); i += workers {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				p.addSample(cohort.Samples[cohort.SampleIDs[i]])
			}
			partials[w] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := newPartialAggregate()
	for _, p := range partials {
		merged.merge(p)
	}
	return merged.finalize(cat, cohort.TotalSamples()), nil
}
