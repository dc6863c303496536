package classify

// CellClass grades one cut.
type CellClass string

const (
	CellGreen       CellClass = "GREEN"
	CellYellow      CellClass = "YELLOW"
	CellRed         CellClass = "RED"
	CellNonNumeric  CellClass = "NON_NUMERIC"
	CellNoThreshold CellClass = "NO_THRESHOLD"
)

// Verdict grades a property or an entity.
type Verdict string

const (
	VerdictGreen  Verdict = "GREEN"
	VerdictYellow Verdict = "YELLOW"
	VerdictRed    Verdict = "RED"
	VerdictNA     Verdict = "NA"
	VerdictEmpty  Verdict = "EMPTY"
)

// Graded reports whether v takes part in a percentage rollup.
func (v Verdict) Graded() bool {
	return v == VerdictGreen || v == VerdictYellow || v == VerdictRed
}

// Params are the tolerance knobs shared by property and global rollups.
type Params struct {
	Tol              float64 `json:"tol"`
	TolHeavy         float64 `json:"tol_heavy"`
	PctGreenForGreen float64 `json:"pct_green_for_green"`
	PctRedForRed     float64 `json:"pct_red_for_red"`
}

// DefaultParams mirrors the configuration defaults.
func DefaultParams() Params {
	return Params{Tol: 0.10, TolHeavy: 0.60, PctGreenForGreen: 0.90, PctRedForRed: 0.30}
}

// CutResult is the grade of one cut with the numbers behind it.
type CutResult struct {
	Cut          string    `json:"cut"`
	Class        CellClass `json:"class"`
	Error        float64   `json:"error,omitempty"`
	Threshold    float64   `json:"threshold,omitempty"`
	HasError     bool      `json:"has_error"`
	HasThreshold bool      `json:"has_threshold"`
	Heavy        bool      `json:"heavy,omitempty"`
}

// Counts tallies the cut classes of a property.
type Counts struct {
	Values      int `json:"values"`
	Valid       int `json:"valid"`
	Green       int `json:"green"`
	Yellow      int `json:"yellow"`
	Red         int `json:"red"`
	NoThreshold int `json:"no_threshold"`
	NonNumeric  int `json:"non_numeric"`
}

// PropertyResult is the verdict of one property row plus its diagnostics.
type PropertyResult struct {
	Property       string      `json:"property"`
	Verdict        Verdict     `json:"verdict"`
	HardRed        bool        `json:"hard_red,omitempty"`
	WorstCut       string      `json:"worst_cut,omitempty"`
	WorstError     float64     `json:"worst_error,omitempty"`
	WorstThreshold float64     `json:"worst_threshold,omitempty"`
	HasWorst       bool        `json:"has_worst"`
	Cuts           []CutResult `json:"cuts"`
	Counts         Counts      `json:"counts"`
}

// ClassOf returns the class assigned to cut, if the property has that cut.
func (r PropertyResult) ClassOf(cut string) (CellClass, bool) {
	for _, c := range r.Cuts {
		if c.Cut == cut {
			return c.Class, true
		}
	}
	return "", false
}
