package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Category is the single classification assigned to every detected gene.
type Category string

const (
	CategoryCarbapenemase     Category = "Carbapenemases"
	CategoryESBL              Category = "ESBLs"
	CategoryAmpC              Category = "AmpC"
	CategoryColistin          Category = "Colistin Resistance"
	CategoryTigecycline       Category = "Tigecycline Resistance"
	CategoryBiofilm           Category = "Biofilm Formation"
	CategoryEfflux            Category = "Efflux Pumps"
	CategoryBiocide           Category = "Biocide Resistance"
	CategoryMetal             Category = "Metal Resistance"
	CategoryCoSelection       Category = "Environmental Co-Selection"
	CategoryEnvAntibiotic     Category = "Environmental Antibiotic Resistance"
	CategoryCuratedVirulence  Category = "Curated Virulence"
	CategoryOtherResistance   Category = "Other Resistance"
	CategoryGenericResistance Category = "Antibiotic Resistance"
	CategoryGenericVirulence  Category = "Virulence Factors"
	CategoryOther             Category = "Other"
)

// Critical reports whether the category is one of the four buckets used
// for high-risk and MDR calls.
func (c Category) Critical() bool {
	switch c {
	case CategoryCarbapenemase, CategoryESBL, CategoryColistin, CategoryTigecycline:
		return true
	}
	return false
}

// Environmental reports whether the category belongs to the
// environmental / co-selection group used for association keys.
func (c Category) Environmental() bool {
	switch c {
	case CategoryBiocide, CategoryMetal, CategoryCoSelection, CategoryEnvAntibiotic:
		return true
	}
	return false
}

// Risk tiers shown next to gene frequency records.
const (
	RiskCritical = "CRITICAL"
	RiskHigh     = "HIGH"
	RiskStandard = "Standard"
)

// Sentinel values used by the typing tools when a call could not be made.
const (
	MissingST      = "ND"
	MissingCapsule = "ND"
	MissingClone   = "Unknown"
)

// SchemePasteur is the scheme used for lineage keys and pattern records.
const SchemePasteur = "pasteur"

// TypingProfile holds the per-sample typing calls.
type TypingProfile struct {
	SequenceTypes      map[string]string `json:"sequence_types"`
	InternationalClone string            `json:"international_clone"`
	CapsuleLocus       string            `json:"capsule_locus"`
}

// SequenceType returns the ST for a scheme, or "ND" when the scheme was
// not typed.
func (t TypingProfile) SequenceType(scheme string) string {
	if st, ok := t.SequenceTypes[scheme]; ok && st != "" {
		return st
	}
	return MissingST
}

// GeneHit is one detected gene in one sample. Immutable once created.
type GeneHit struct {
	Gene     string  `json:"gene"`
	Database string  `json:"database"`
	Product  string  `json:"product"`
	Coverage float64 `json:"coverage_pct"`
	Identity float64 `json:"identity_pct"`
	SampleID string  `json:"sample_id"`
}

// Sample is one genome with its typing calls and gene hits. A sample
// with zero hits still counts towards the cohort size.
type Sample struct {
	ID     string        `json:"id"`
	Typing TypingProfile `json:"typing"`
	Hits   []GeneHit     `json:"hits"`
}

// Cohort is the full set of samples for one analysis run.
type Cohort struct {
	Samples   map[string]*Sample
	SampleIDs []string // canonical ids, sorted
}

// TotalSamples is the cohort size, including samples without hits.
func (c *Cohort) TotalSamples() int {
	return len(c.SampleIDs)
}

// GeneFrequencyRecord is one row of a gene-centric frequency table.
type GeneFrequencyRecord struct {
	Gene       string   `json:"gene"`
	Category   Category `json:"category"`
	Database   string   `json:"database"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	Samples    []string `json:"samples"`
	RiskTier   string   `json:"risk_tier,omitempty"`
}

// GenePairCount is the co-occurrence count of an unordered gene pair,
// stored with GeneA < GeneB.
type GenePairCount struct {
	GeneA string `json:"gene_a"`
	GeneB string `json:"gene_b"`
	Count int    `json:"count"`
}

// DatabaseCoverage says how much of the cohort produced at least one
// hit in a database.
type DatabaseCoverage struct {
	SamplesWithHits int     `json:"samples_with_hits"`
	TotalSamples    int     `json:"total_samples"`
	CoveragePct     float64 `json:"coverage_pct"`
}

// AggregateResult is the output of the cross-genome aggregation stage.
type AggregateResult struct {
	Tables       map[string][]GeneFrequencyRecord   `json:"gene_frequency_tables"`
	Categories   map[Category][]GeneFrequencyRecord `json:"gene_categories"`
	Combined     []GeneFrequencyRecord              `json:"combined_gene_frequencies"`
	CoOccurrence []GenePairCount                    `json:"gene_cooccurrence"`
	Coverage     map[string]DatabaseCoverage        `json:"database_coverage"`
	TotalSamples int                                `json:"total_samples"`
}

// HighRiskCombination marks a sample carrying a carbapenemase together
// with a last-resort (colistin or tigecycline) resistance gene.
type HighRiskCombination struct {
	SampleID              string   `json:"sample"`
	SequenceType          string   `json:"sequence_type"`
	InternationalClone    string   `json:"international_clone"`
	CapsuleLocus          string   `json:"capsule_locus"`
	Carbapenemases        []string `json:"carbapenemases"`
	ColistinResistance    []string `json:"colistin_resistance"`
	TigecyclineResistance []string `json:"tigecycline_resistance"`
}

// MDRPattern marks a sample with three or more non-empty critical
// resistance buckets.
type MDRPattern struct {
	SampleID              string   `json:"sample"`
	SequenceType          string   `json:"sequence_type"`
	InternationalClone    string   `json:"international_clone"`
	BucketCount           int      `json:"resistance_types"`
	Carbapenemases        []string `json:"carbapenemases"`
	ESBLs                 []string `json:"esbls"`
	ColistinResistance    []string `json:"colistin_resistance"`
	TigecyclineResistance []string `json:"tigecycline_resistance"`
}

// ValueCount is one entry of a typing distribution.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PatternSet is the output of the pattern discovery stage.
type PatternSet struct {
	HighRisk                  []HighRiskCombination   `json:"high_risk"`
	MDR                       []MDRPattern            `json:"mdr"`
	LineageAssociations       map[string][]string     `json:"lineage_associations"`
	EnvironmentalAssociations map[string][]string     `json:"environmental_associations"`
	CarbapenemasePatterns     map[string][]string     `json:"carbapenemase_patterns"`
	STDistributions           map[string][]ValueCount `json:"st_distributions"`
	CapsuleDistribution       []ValueCount            `json:"capsule_distribution"`
	CloneDistribution         []ValueCount            `json:"clone_distribution"`
}

// DatabaseStats are the per-database totals of the overall summary.
type DatabaseStats struct {
	UniqueGenes      int `json:"unique_genes"`
	TotalOccurrences int `json:"total_occurrences"`
	CriticalGenes    int `json:"critical_genes"`
}

// Summary is the compiled, renderer-facing result of one run.
type Summary struct {
	TotalSamples          int                                `json:"total_samples"`
	TotalGeneHits         int                                `json:"total_gene_hits"`
	CarbapenemasePositive int                                `json:"carbapenemase_positive"`
	ESBLPositive          int                                `json:"esbl_positive"`
	ColistinPositive      int                                `json:"colistin_positive"`
	TigecyclinePositive   int                                `json:"tigecycline_positive"`
	HighRiskSamples       int                                `json:"high_risk_samples"`
	MDRSamples            int                                `json:"mdr_samples"`
	DatabaseStats         map[string]DatabaseStats           `json:"database_stats"`
	Tables                map[string][]GeneFrequencyRecord   `json:"gene_frequency_tables"`
	Categories            map[Category][]GeneFrequencyRecord `json:"gene_categories"`
	Coverage              map[string]DatabaseCoverage        `json:"database_coverage"`
	CoOccurrence          []GenePairCount                    `json:"gene_cooccurrence"`
	Patterns              *PatternSet                        `json:"patterns"`
}

// Warning reports a malformed input record that was skipped. The run
// continues; warnings are returned alongside the result.
type Warning struct {
	SampleID string `json:"sample_id"`
	Field    string `json:"field"`
	Reason   string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("sample %q: %s: %s", w.SampleID, w.Field, w.Reason)
}

// Percent decodes a JSON number, a quoted number, or the empty string
// that some upstream report parsers emit for "no value".
type Percent float64

func (p *Percent) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte(`""`)) || bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("percent %q: %w", s, err)
		}
		*p = Percent(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}

// SampleRecord is the in-process input contract: one already-parsed
// per-sample record handed over by the report adapters.
type SampleRecord struct {
	SampleID string          `json:"sample_id"`
	Typing   TypingRecord    `json:"typing"`
	GeneHits []GeneHitRecord `json:"gene_hits"`
}

// TypingRecord mirrors the typing block of the input contract.
type TypingRecord struct {
	SequenceTypes map[string]string `json:"sequence_type_by_scheme"`
	LineageLabel  string            `json:"lineage_label"`
	CapsuleLocus  string            `json:"capsule_locus"`
}

// GeneHitRecord mirrors one gene hit of the input contract.
type GeneHitRecord struct {
	Gene     string  `json:"gene"`
	Database string  `json:"database"`
	Product  string  `json:"product"`
	Coverage Percent `json:"coverage_pct"`
	Identity Percent `json:"identity_pct"`
}
