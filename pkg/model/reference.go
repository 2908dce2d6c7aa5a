package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReferenceLists are the named gene lists the categorizer matches
// against. They are injected configuration: the defaults below mirror
// the curated A. baumannii lists, and any of them can be replaced from
// a YAML file without touching the classifier.
type ReferenceLists struct {
	Carbapenemases           []string `yaml:"carbapenemases"`
	ESBLs                    []string `yaml:"esbls"`
	AmpC                     []string `yaml:"ampc"`
	Colistin                 []string `yaml:"colistin"`
	Tigecycline              []string `yaml:"tigecycline"`
	Biofilm                  []string `yaml:"biofilm"`
	Efflux                   []string `yaml:"efflux"`
	Biocides                 []string `yaml:"biocides"`
	Metals                   []string `yaml:"metals"`
	CoSelection              []string `yaml:"co_selection"`
	EnvironmentalAntibiotics []string `yaml:"environmental_antibiotics"`
	CuratedVirulence         []string `yaml:"curated_virulence"`
	OtherResistance          []string `yaml:"other_resistance"`
	ResistanceKeywords       []string `yaml:"resistance_keywords"`
	VirulenceKeywords        []string `yaml:"virulence_keywords"`
}

// DefaultReferenceLists returns the compiled-in curated lists.
func DefaultReferenceLists() *ReferenceLists {
	return &ReferenceLists{
		Carbapenemases:           defaultCarbapenemases(),
		ESBLs:                    defaultESBLs(),
		AmpC:                     defaultAmpC(),
		Colistin:                 defaultColistin(),
		Tigecycline:              defaultTigecycline(),
		Biofilm:                  defaultBiofilm(),
		Efflux:                   defaultEfflux(),
		Biocides:                 defaultBiocides(),
		Metals:                   defaultMetals(),
		CoSelection:              defaultCoSelection(),
		EnvironmentalAntibiotics: defaultEnvironmentalAntibiotics(),
		CuratedVirulence:         defaultCuratedVirulence(),
		OtherResistance:          defaultOtherResistance(),
		ResistanceKeywords:       defaultResistanceKeywords(),
		VirulenceKeywords:        defaultVirulenceKeywords(),
	}
}

// LoadReferenceLists reads gene lists from a YAML file. Lists absent
// from the file keep their compiled-in defaults, so a config only has
// to name the lists it wants to override.
func LoadReferenceLists(path string) (*ReferenceLists, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference lists: %w", err)
	}

	var loaded ReferenceLists
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("parse reference lists %s: %w", path, err)
	}

	ref := DefaultReferenceLists()
	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	merge(&ref.Carbapenemases, loaded.Carbapenemases)
	merge(&ref.ESBLs, loaded.ESBLs)
	merge(&ref.AmpC, loaded.AmpC)
	merge(&ref.Colistin, loaded.Colistin)
	merge(&ref.Tigecycline, loaded.Tigecycline)
	merge(&ref.Biofilm, loaded.Biofilm)
	merge(&ref.Efflux, loaded.Efflux)
	merge(&ref.Biocides, loaded.Biocides)
	merge(&ref.Metals, loaded.Metals)
	merge(&ref.CoSelection, loaded.CoSelection)
	merge(&ref.EnvironmentalAntibiotics, loaded.EnvironmentalAntibiotics)
	merge(&ref.CuratedVirulence, loaded.CuratedVirulence)
	merge(&ref.OtherResistance, loaded.OtherResistance)
	merge(&ref.ResistanceKeywords, loaded.ResistanceKeywords)
	merge(&ref.VirulenceKeywords, loaded.VirulenceKeywords)

	return ref, nil
}
