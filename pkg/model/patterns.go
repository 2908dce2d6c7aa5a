package model

import (
	"fmt"
	"sort"
	"strings"
)

// criticalBuckets is the per-sample partition of categorized genes used
// by the high-risk and MDR rules.
type criticalBuckets struct {
	carbapenemases []string
	esbls          []string
	colistin       []string
	tigecycline    []string
	environmental  []string
}

func (b criticalBuckets) nonEmpty() int {
	n := 0
	if len(b.carbapenemases) > 0 {
		n++
	}
	if len(b.esbls) > 0 {
		n++
	}
	if len(b.colistin) > 0 {
		n++
	}
	if len(b.tigecycline) > 0 {
		n++
	}
	return n
}

func partitionGenes(genes []string, cat *Categorizer) criticalBuckets {
	var b criticalBuckets
	for _, g := range genes {
		switch c := cat.Categorize(g); {
		case c == CategoryCarbapenemase:
			b.carbapenemases = append(b.carbapenemases, g)
		case c == CategoryESBL:
			b.esbls = append(b.esbls, g)
		case c == CategoryColistin:
			b.colistin = append(b.colistin, g)
		case c == CategoryTigecycline:
			b.tigecycline = append(b.tigecycline, g)
		case c.Environmental():
			b.environmental = append(b.environmental, g)
		}
	}
	return b
}

// DiscoverPatterns runs the rule-based pattern pass over every sample's
// categorized gene set and typing metadata. One pass, no state carried
// between samples; samples are visited in canonical id order so the
// emitted lists are deterministic.
func DiscoverPatterns(cohort *Cohort, cat *Categorizer) *PatternSet {
	ps := &PatternSet{
		LineageAssociations:       make(map[string][]string),
		EnvironmentalAssociations: make(map[string][]string),
		CarbapenemasePatterns:     make(map[string][]string),
		STDistributions:           make(map[string][]ValueCount),
	}

	stCounts := make(map[string]map[string]int) // scheme -> st -> count
	capsuleCounts := make(map[string]int)
	cloneCounts := make(map[string]int)

	for _, id := range cohort.SampleIDs {
		s := cohort.Samples[id]
		st := s.Typing.SequenceType(SchemePasteur)
		capsule := s.Typing.CapsuleLocus
		clone := s.Typing.InternationalClone

		for scheme, v := range s.Typing.SequenceTypes {
			if v == MissingST {
				continue
			}
			if stCounts[scheme] == nil {
				stCounts[scheme] = make(map[string]int)
			}
			stCounts[scheme][v]++
		}
		if capsule != MissingCapsule {
			capsuleCounts[capsule]++
		}
		if clone != MissingClone {
			cloneCounts[clone]++
		}

		// Samples missing either typing field stay out of the lineage
		// grouping entirely rather than piling up under an "unknown"
		// key that would say nothing about lineage.
		if st != MissingST && capsule != MissingCapsule {
			key := fmt.Sprintf("ST%s-%s", st, capsule)
			ps.LineageAssociations[key] = append(ps.LineageAssociations[key], id)
		}

		b := partitionGenes(s.GeneSet(), cat)

		if len(b.carbapenemases) > 0 {
			key := strings.Join(b.carbapenemases, "+")
			ps.CarbapenemasePatterns[key] = append(ps.CarbapenemasePatterns[key], id)
		}

		if len(b.environmental) > 0 {
			key := strings.Join(b.environmental, "+")
			ps.EnvironmentalAssociations[key] = append(ps.EnvironmentalAssociations[key], id)
		}

		if len(b.carbapenemases) > 0 && (len(b.colistin) > 0 || len(b.tigecycline) > 0) {
			ps.HighRisk = append(ps.HighRisk, HighRiskCombination{
				SampleID:              id,
				SequenceType:          st,
				InternationalClone:    clone,
				CapsuleLocus:          capsule,
				Carbapenemases:        b.carbapenemases,
				ColistinResistance:    b.colistin,
				TigecyclineResistance: b.tigecycline,
			})
		}

		if n := b.nonEmpty(); n >= 3 {
			ps.MDR = append(ps.MDR, MDRPattern{
				SampleID:              id,
				SequenceType:          st,
				InternationalClone:    clone,
				BucketCount:           n,
				Carbapenemases:        b.carbapenemases,
				ESBLs:                 b.esbls,
				ColistinResistance:    b.colistin,
				TigecyclineResistance: b.tigecycline,
			})
		}
	}

	for scheme, counts := range stCounts {
		ps.STDistributions[scheme] = distribution(counts)
	}
	ps.CapsuleDistribution = distribution(capsuleCounts)
	ps.CloneDistribution = distribution(cloneCounts)

	return ps
}

// distribution turns value counts into count+percentage entries sorted
// by count descending, ties by value ascending. Percentages are over
// the samples with a real value for the field, not the whole cohort.
func distribution(counts map[string]int) []ValueCount {
	if len(counts) == 0 {
		return nil
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n, Percentage: percentage(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
