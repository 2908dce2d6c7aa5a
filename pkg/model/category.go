package model

import "strings"

// categoryRule is one entry of the ordered rule table: the first rule
// whose term list matches the lowercased gene symbol decides the
// category. The table order is the precedence contract, so the more
// clinically specific category always wins over broader keyword rules
// that would also match.
type categoryRule struct {
	Name     string
	Category Category
	terms    []string // lowercased
}

func (r categoryRule) matches(geneLower string) bool {
	for _, t := range r.terms {
		if strings.Contains(geneLower, t) {
			return true
		}
	}
	return false
}

// Categorizer assigns exactly one Category to every gene symbol. It is
// total: any input, however malformed, resolves to a category, with
// CategoryOther as the explicit fallback.
type Categorizer struct {
	rules []categoryRule
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NewCategorizer builds the ordered rule table from the injected
// reference lists. Precedence, highest first: carbapenemase, ESBL,
// AmpC, colistin, tigecycline, biofilm, efflux, biocide, metal,
// co-selection, environmental antibiotic, curated virulence, other
// fixed resistance, then the generic resistance and virulence keyword
// fallbacks.
func NewCategorizer(ref *ReferenceLists) *Categorizer {
	if ref == nil {
		ref = DefaultReferenceLists()
	}
	rules := []categoryRule{
		{"carbapenemases", CategoryCarbapenemase, lowerAll(ref.Carbapenemases)},
		{"esbls", CategoryESBL, lowerAll(ref.ESBLs)},
		{"ampc", CategoryAmpC, lowerAll(ref.AmpC)},
		{"colistin", CategoryColistin, lowerAll(ref.Colistin)},
		{"tigecycline", CategoryTigecycline, lowerAll(ref.Tigecycline)},
		{"biofilm", CategoryBiofilm, lowerAll(ref.Biofilm)},
		{"efflux", CategoryEfflux, lowerAll(ref.Efflux)},
		{"biocides", CategoryBiocide, lowerAll(ref.Biocides)},
		{"metals", CategoryMetal, lowerAll(ref.Metals)},
		{"co_selection", CategoryCoSelection, lowerAll(ref.CoSelection)},
		{"environmental_antibiotics", CategoryEnvAntibiotic, lowerAll(ref.EnvironmentalAntibiotics)},
		{"curated_virulence", CategoryCuratedVirulence, lowerAll(ref.CuratedVirulence)},
		{"other_resistance", CategoryOtherResistance, lowerAll(ref.OtherResistance)},
		{"resistance_keywords", CategoryGenericResistance, lowerAll(ref.ResistanceKeywords)},
		{"virulence_keywords", CategoryGenericVirulence, lowerAll(ref.VirulenceKeywords)},
	}
	return &Categorizer{rules: rules}
}

// Categorize maps a gene symbol to its category. Matching is
// case-insensitive substring against each rule's list, first match
// wins, unmatched symbols land in CategoryOther.
func (c *Categorizer) Categorize(gene string) Category {
	geneLower := strings.ToLower(strings.TrimSpace(gene))
	for _, r := range c.rules {
		if r.matches(geneLower) {
			return r.Category
		}
	}
	return CategoryOther
}

// Rules exposes the rule table order for tests and diagnostics.
func (c *Categorizer) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// RiskTier derives the display tier for a category: carbapenemases are
// critical, the remaining last-resort buckets are high, everything
// else standard.
func RiskTier(cat Category) string {
	switch cat {
	case CategoryCarbapenemase:
		return RiskCritical
	case CategoryESBL, CategoryColistin, CategoryTigecycline:
		return RiskHigh
	default:
		return RiskStandard
	}
}
