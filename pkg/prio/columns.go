package prio

// Columns names the input columns the scorer reads. Every other column in
// the table is opaque payload carried through untouched. Only the
// classification column is required; the rest are treated as missing when
// absent.
type Columns struct {
	Classification string `json:"classification" yaml:"classification"`
	Consensus      string `json:"consensus" yaml:"consensus"`
	Confidence     string `json:"confidence" yaml:"confidence"`
	CADD           string `json:"cadd" yaml:"cadd"`
	SIFT           string `json:"sift" yaml:"sift"`
	GERP           string `json:"gerp" yaml:"gerp"`
	PhyloP         string `json:"phylop" yaml:"phylop"`
	MetaSVM        string `json:"metasvm" yaml:"metasvm"`
}

// DefaultColumns returns the header names produced by the upstream
// annotation step.
func DefaultColumns() Columns {
	return Columns{
		Classification: "ACMG",
		Consensus:      "clinvar: Clinvar ", // trailing space is in the real header
		Confidence:     "CLNSIGCONF",
		CADD:           "CADD_phred",
		SIFT:           "SIFT_score",
		GERP:           "GERP++_RS",
		PhyloP:         "phyloP46way_placental",
		MetaSVM:        "MetaSVM_score",
	}
}
