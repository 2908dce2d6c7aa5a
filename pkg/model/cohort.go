package model

import "sort"

// BuildCohort turns the adapter-supplied per-sample records into a
// cohort keyed by canonical sample id. Records that normalize to the
// same id are merged: gene hits are concatenated and missing typing
// fields are filled from whichever record has a real value, since the
// typing and gene-detection tools report the same genome separately.
//
// Malformed entries are skipped one at a time and reported as
// warnings; the run never aborts. A record whose sample id normalizes
// to the empty string cannot be attributed to any genome and is
// dropped whole. A gene hit without a gene symbol or database is
// dropped on its own while the rest of the sample survives.
func BuildCohort(records []SampleRecord) (*Cohort, []Warning) {
	samples := make(map[string]*Sample)
	var warnings []Warning

	for _, rec := range records {
		id := NormalizeSampleID(rec.SampleID)
		if id == "" {
			warnings = append(warnings, Warning{
				SampleID: rec.SampleID,
				Field:    "sample_id",
				Reason:   "empty after normalization, record skipped",
			})
			continue
		}

		s, ok := samples[id]
		if !ok {
			s = &Sample{
				ID: id,
				Typing: TypingProfile{
					SequenceTypes:      map[string]string{},
					InternationalClone: MissingClone,
					CapsuleLocus:       MissingCapsule,
				},
			}
			samples[id] = s
		}

		mergeTyping(&s.Typing, rec.Typing)

		for _, h := range rec.GeneHits {
			if h.Gene == "" {
				warnings = append(warnings, Warning{
					SampleID: id,
					Field:    "gene_hits.gene",
					Reason:   "missing gene symbol, hit skipped",
				})
				continue
			}
			if h.Database == "" {
				warnings = append(warnings, Warning{
					SampleID: id,
					Field:    "gene_hits.database",
					Reason:   "missing database, hit skipped",
				})
				continue
			}
			s.Hits = append(s.Hits, GeneHit{
				Gene:     h.Gene,
				Database: h.Database,
				Product:  h.Product,
				Coverage: float64(h.Coverage),
				Identity: float64(h.Identity),
				SampleID: id,
			})
		}
	}

	ids := make([]string, 0, len(samples))
	for id := range samples {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Cohort{Samples: samples, SampleIDs: ids}, warnings
}

func mergeTyping(dst *TypingProfile, rec TypingRecord) {
	for scheme, st := range rec.SequenceTypes {
		if st == "" {
			st = MissingST
		}
		if cur, ok := dst.SequenceTypes[scheme]; !ok || cur == MissingST {
			dst.SequenceTypes[scheme] = st
		}
	}
	if rec.LineageLabel != "" && rec.LineageLabel != MissingClone && dst.InternationalClone == MissingClone {
		dst.InternationalClone = rec.LineageLabel
	}
	if rec.CapsuleLocus != "" && rec.CapsuleLocus != MissingCapsule && dst.CapsuleLocus == MissingCapsule {
		dst.CapsuleLocus = rec.CapsuleLocus
	}
}

// GeneSet returns the distinct gene symbols of a sample across all
// databases, sorted.
func (s *Sample) GeneSet() []string {
	seen := make(map[string]bool, len(s.Hits))
	for _, h := range s.Hits {
		seen[h.Gene] = true
	}
	genes := make([]string, 0, len(seen))
	for g := range seen {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	return genes
}
