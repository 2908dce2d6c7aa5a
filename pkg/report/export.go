// Export of a compiled summary for downstream consumers: one lossless
// JSON document plus per-table CSV files. HTML rendering lives outside
// this repo and feeds on the same structures.

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bbeckley-hub/acinetoscope/internal/util"
	"github.com/bbeckley-hub/acinetoscope/pkg/model"
)

// WriteJSON writes the full summary as one JSON document. Unmarshaling
// the file gives back the identical structure.
func WriteJSON(sum *model.Summary, outPath string) error {
	if err := util.EnsureDir(path.Dir(outPath)); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// WriteCSVReports writes one CSV per result table into outDir and
// returns the files written. File order and row order are
// deterministic.
func WriteCSVReports(sum *model.Summary, outDir string) ([]string, error) {
	if err := util.EnsureDir(outDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	write := func(name string, header []string, rows [][]string) error {
		p := path.Join(outDir, name)
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("create %s: %w", p, err)
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header of %s: %w", name, err)
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row of %s: %w", name, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flush %s: %w", name, err)
		}
		written = append(written, p)
		return nil
	}

	// Gene frequencies, all databases in one file.
	var freqRows [][]string
	for _, dbName := range sortedTableKeys(sum.Tables) {
		for _, rec := range sum.Tables[dbName] {
			freqRows = append(freqRows, []string{
				dbName, rec.Gene, string(rec.Category),
				strconv.Itoa(rec.Count), formatPct(rec.Percentage),
				rec.RiskTier, strings.Join(rec.Samples, ";"),
			})
		}
	}
	if err := write("gene_frequencies.csv",
		[]string{"database", "gene", "category", "count", "percentage", "risk_tier", "samples"},
		freqRows); err != nil {
		return nil, err
	}

	// High-risk combinations.
	var hrRows [][]string
	for _, hr := range sum.Patterns.HighRisk {
		hrRows = append(hrRows, []string{
			hr.SampleID, hr.SequenceType, hr.InternationalClone, hr.CapsuleLocus,
			strings.Join(hr.Carbapenemases, ";"),
			strings.Join(hr.ColistinResistance, ";"),
			strings.Join(hr.TigecyclineResistance, ";"),
		})
	}
	if err := write("high_risk_combinations.csv",
		[]string{"sample", "sequence_type", "international_clone", "capsule_locus",
			"carbapenemases", "colistin_resistance", "tigecycline_resistance"},
		hrRows); err != nil {
		return nil, err
	}

	// MDR patterns.
	var mdrRows [][]string
	for _, m := range sum.Patterns.MDR {
		mdrRows = append(mdrRows, []string{
			m.SampleID, m.SequenceType, m.InternationalClone,
			strconv.Itoa(m.BucketCount),
			strings.Join(m.Carbapenemases, ";"),
			strings.Join(m.ESBLs, ";"),
			strings.Join(m.ColistinResistance, ";"),
			strings.Join(m.TigecyclineResistance, ";"),
		})
	}
	if err := write("mdr_patterns.csv",
		[]string{"sample", "sequence_type", "international_clone", "resistance_types",
			"carbapenemases", "esbls", "colistin_resistance", "tigecycline_resistance"},
		mdrRows); err != nil {
		return nil, err
	}

	// Database coverage.
	var covRows [][]string
	covDBs := make([]string, 0, len(sum.Coverage))
	for dbName := range sum.Coverage {
		covDBs = append(covDBs, dbName)
	}
	sort.Strings(covDBs)
	for _, dbName := range covDBs {
		cov := sum.Coverage[dbName]
		covRows = append(covRows, []string{
			dbName, strconv.Itoa(cov.SamplesWithHits),
			strconv.Itoa(cov.TotalSamples), formatPct(cov.CoveragePct),
		})
	}
	if err := write("database_coverage.csv",
		[]string{"database", "samples_with_hits", "total_samples", "coverage_pct"},
		covRows); err != nil {
		return nil, err
	}

	return written, nil
}

func sortedTableKeys(tables map[string][]model.GeneFrequencyRecord) []string {
	keys := make([]string, 0, len(tables))
	for k := range tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
