package validation

import (
	"crudeval/internal/aggregate"
	"crudeval/internal/classify"
	"crudeval/internal/grid"
	"crudeval/internal/pairing"
	"crudeval/internal/thresholds"
)

// Source supplies the tables of a run. Identifiers returned by List are
// file names relative to dir.
type Source interface {
	List(dir string) ([]string, error)
	Load(path string) (*grid.Table, error)
}

// Request names the inputs of one run.
type Request struct {
	ReferenceDir  string
	CandidateDir  string
	ThresholdFile string
}

// DetailRow is one reference property row with its grading.
type DetailRow struct {
	Label string `json:"label"`
	classify.PropertyResult
}

// EntityResult is the graded comparison of one reference/candidate pair.
type EntityResult struct {
	Key       string           `json:"key"`
	Reference string           `json:"reference"`
	Candidate string           `json:"candidate"`
	Global    classify.Verdict `json:"global"`
	Cuts      []grid.CutColumn `json:"cuts"`
	Rows      []DetailRow      `json:"rows"`
}

// DetailHeader lists the detail table columns: the fixed diagnostic columns
// followed by one column per reference cut.
func (e EntityResult) DetailHeader() []string {
	header := []string{"Property", "Verdict", "Worst cut", "Worst error", "Worst threshold"}
	for _, c := range e.Cuts {
		header = append(header, c.Label)
	}
	return header
}

// EntityFailure records an entity that could not be graded.
type EntityFailure struct {
	Key       string `json:"key"`
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
	Message   string `json:"error"`
	Err       error  `json:"-"`
}

// Result is everything a run produced.
type Result struct {
	RunID          string             `json:"run_id"`
	Params         classify.Params    `json:"params"`
	ThresholdStats thresholds.Stats   `json:"threshold_stats"`
	Thresholds     *thresholds.Matrix `json:"-"`
	Pairing        pairing.Result     `json:"pairing"`
	Entities       []EntityResult     `json:"entities"`
	Summary        aggregate.Summary  `json:"summary"`
	Failures       []EntityFailure    `json:"failures,omitempty"`
}
