package model

// Default reference gene lists. These are data, not logic: the
// categorizer only ever sees them through ReferenceLists, so the lists
// can be replaced from configuration (see LoadReferenceLists) without
// touching rule evaluation. Matching is case-insensitive substring, so
// a family name such as "blaNDM" also covers its numbered alleles.

func defaultCarbapenemases() []string {
	return []string{
		// OXA-type, the common carbapenemases in A. baumannii
		"blaOXA-23", "blaOXA-24", "blaOXA-40", "blaOXA-51", "blaOXA-58",
		"blaOXA-66", "blaOXA-69", "blaOXA-71", "blaOXA-91", "blaOXA-143",
		"blaOXA-235", "blaOXA-236", "blaOXA-237", "blaOXA-267", "blaOXA-317",
		// Metallo-beta-lactamases
		"blaNDM", "blaVIM", "blaIMP", "blaKPC",
		// Other carbapenemase families
		"blaGES", "blaSIM", "blaSPM", "blaAIM",
	}
}

func defaultESBLs() []string {
	return []string{
		"blaCTX-M",
		// SHV and TEM carry ESBL activity only in numbered variants; the
		// parental blaSHV-1/blaTEM-1 are narrow-spectrum, so the families
		// are listed through representative variants rather than bare
		// "blaSHV"/"blaTEM".
		"blaSHV-2", "blaSHV-5", "blaSHV-12", "blaSHV-18", "blaSHV-27",
		"blaTEM-3", "blaTEM-10", "blaTEM-24", "blaTEM-26", "blaTEM-52",
		"blaPER", "blaVEB", "blaBEL", "blaGES",
		"blaSFO", "blaTLA", "blaBES", "blaSCO",
	}
}

func defaultAmpC() []string {
	return []string{
		"blaADC", "blaADC-1", "blaADC-2", "blaADC-5", "blaADC-7",
		"blaADC-11", "blaADC-30", "blaADC-69", "blaADC-75", "blaADC-88",
	}
}

func defaultColistin() []string {
	return []string{
		"mcr-1", "mcr-2", "mcr-3", "mcr-4", "mcr-5",
		"mcr-6", "mcr-7", "mcr-8", "mcr-9", "mcr-10",
		"pmrA", "pmrB", "pmrC", "pmrE", "pmrF",
		"lpxA", "lpxC", "lpxD", "lpxL", "lpxM",
		"eptA", "arnA", "arnB", "arnC", "arnD", "arnE", "arnF",
		"pagP", "phoP", "phoQ",
	}
}

func defaultTigecycline() []string {
	return []string{
		"tet(X)", "tet(X1)", "tet(X2)", "tet(X3)", "tet(X4)", "tet(X5)", "tet(X6)",
		"tetX", "tet(39)",
		"tet(A)", "tet(B)", "tet(C)", "tet(D)", "tet(E)", "tet(G)", "tet(H)",
		"tet(J)", "tet(L)", "tet(M)", "tet(O)", "tet(Q)", "tet(S)", "tet(W)",
		"adeS", "adeR", "adeA", "adeB", "adeC", "adeJ", "adeK", "adeN", "adeT",
	}
}

func defaultBiofilm() []string {
	return []string{
		"ompA", "csuA", "csuB", "csuC", "csuD", "csuE", "csuA/B",
		"bfmR", "bfmS", "abaI", "abaR",
		"pilA", "pilB", "pilC", "pilD", "pilE", "pilF",
		"ptk", "epsA", "pgaA", "pgaB", "pgaC", "pgaD", "bap",
	}
}

func defaultEfflux() []string {
	return []string{
		"adeF", "adeG", "adeH", "adeI", "adeL", "adeM",
		"abeM", "abeS", "amvA", "craA",
		"mexJ", "mexK", "mexT", "mdeA", "mdfA", "mdtN",
	}
}

func defaultBiocides() []string {
	return []string{
		"qacA", "qacB", "qacC", "qacD", "qacE", "qacF", "qacG", "qacH",
		"qacI", "qacJ", "qacEdelta1",
		"cepA",
		"formA", "formB", "formC",
		"oqxA", "oqxB",
	}
}

func defaultMetals() []string {
	return []string{
		"czcA", "czcB", "czcC", "czcD", "czcR", "czcS", // cadmium/zinc/cobalt
		"merA", "merB", "merC", "merD", "merE", "merP", "merT", // mercury
		"arsA", "arsB", "arsC", "arsD", "arsH", // arsenic
		"copA", "copB", "copC", "copD", // copper
		"zntA", "znuB", "znuC", // zinc
		"chrA", "chrB", // chromate
		"nikA", "nikB", "nikR", // nickel
		"cadA", "cadC", "cadR",
		"silA", "silB", "silC", "silE", // silver
		"pbrA", "pbrR", // lead
		"corA", "corC", "pitA", "nccN", "nreB",
	}
}

func defaultCoSelection() []string {
	return []string{
		// Global regulators inducing efflux
		"soxR", "soxS", "marA", "marB", "marC", "marR", "robA",
		"rpoS", "rpoH",
		"cpxR", "baeR", "lmrS", "sugE",
		// Starvation responses
		"phoB", "phoR", "phoU",
		// Conjugation / mobilization
		"traA", "traB", "traC", "traD", "traE", "traF", "traG", "traH",
		"traI", "traJ", "traK", "traL", "traM", "traN",
		"mobA", "mobB", "mobC",
		"oriT", "oriV", "repA", "repB", "repC",
		// Integrons, transposons, insertion sequences
		"intI1", "intI2", "intI3",
		"tnpA", "tnpB", "tnpC",
		"istA", "istB",
	}
}

func defaultEnvironmentalAntibiotics() []string {
	return []string{
		"sul1", "sul2", "sul3",
		"dfrA", "dfrB",
		"catA", "catB", "catI", "catII", "catIII",
		"aac", "aad", "ant", "aph",
		"tet", "tetR",
		"erm", "ere", "mef", "msr",
		"mdt", "emr", "acr", "tolC",
		"blaTEM", "blaSHV", "blaCTX-M", "blaOXA",
	}
}

func defaultCuratedVirulence() []string {
	return []string{
		// Adhesion
		"fimA", "fimB", "fimC", "fimD", "fimH",
		"papA", "papB", "papC", "papG",
		"afa", "dra",
		// Toxins
		"hlyA", "hlyB", "hlyC", "hlyD",
		"cnf1", "cnf2", "sat", "astA", "stx1", "stx2",
		// Immune evasion
		"iss", "traT", "kpsM", "kpsT", "ibeA", "ibeB",
		// Iron acquisition
		"iutA", "iroN", "fyuA", "irp1", "irp2", "chu",
		// Other
		"usp", "vat", "pic", "sigA", "tia",
	}
}

func defaultOtherResistance() []string {
	return []string{
		"qnrA", "qnrB", "qnrC", "qnrD", "qnrS", "qnrVC",
		"aac(6')-Ib-cr",
		"fosA", "fosB", "fosC", "fosX",
		"mgrB", "eptB",
	}
}

func defaultResistanceKeywords() []string {
	return []string{"sul", "dfr", "cat", "aac", "aad", "ant", "aph", "tet", "erm"}
}

func defaultVirulenceKeywords() []string {
	return []string{"tox", "hly", "cnf", "iss", "fim", "pap"}
}
