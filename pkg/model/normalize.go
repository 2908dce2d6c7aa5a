package model

import (
	"path"
	"sort"
	"strings"
)

// Filename suffixes the upstream tools leave on sample identifiers,
// checked longest-first so ".fasta" wins over ".fa".
var knownSuffixes = []string{
	".fna", ".fasta", ".fa", ".gb", ".gbk", ".gbff", ".txt", ".tsv", ".csv",
}

func init() {
	sort.Slice(knownSuffixes, func(i, j int) bool {
		return len(knownSuffixes[i]) > len(knownSuffixes[j])
	})
}

// NormalizeSampleID canonicalizes a raw sample identifier so the same
// genome lines up across typing and gene-detection reports. It strips
// any path prefix, removes trailing known filename suffixes, rewrites
// the GCF_ accession prefix to GCA_ (two upstream tools refer to the
// same assembly under different prefixes), and trims whitespace.
// Pure and idempotent: NormalizeSampleID(NormalizeSampleID(x)) ==
// NormalizeSampleID(x) for every input, including the empty string.
func NormalizeSampleID(raw string) string {
	sample := strings.TrimSpace(raw)

	if strings.ContainsAny(sample, `/\`) {
		sample = path.Base(strings.ReplaceAll(sample, `\`, "/"))
	}

	// Stacked suffixes ("x.fasta.fna") all come off, otherwise a second
	// normalization pass would keep shortening the id.
	for stripped := true; stripped; {
		stripped = false
		for _, ext := range knownSuffixes {
			if strings.HasSuffix(sample, ext) && len(sample) > len(ext) {
				sample = sample[:len(sample)-len(ext)]
				stripped = true
				break
			}
		}
	}

	if strings.HasPrefix(sample, "GCF_") {
		sample = "GCA_" + sample[len("GCF_"):]
	}

	return strings.TrimSpace(sample)
}
