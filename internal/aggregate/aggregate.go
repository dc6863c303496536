package aggregate

import "crudeval/internal/classify"

// GlobalRow labels the synthetic summary row holding entity verdicts.
const GlobalRow = "GLOBAL"

// PropertyVerdict pairs a canonical property with its verdict.
type PropertyVerdict struct {
	Property string           `json:"property"`
	Verdict  classify.Verdict `json:"verdict"`
}

// Global restricts verdicts to GREEN, YELLOW and RED and applies the same
// two-percentage rule as the property rollup. Nothing graded yields EMPTY.
func Global(verdicts []classify.Verdict, p classify.Params) classify.Verdict {
	var green, red, total int
	for _, v := range verdicts {
		if !v.Graded() {
			continue
		}
		total++
		switch v {
		case classify.VerdictGreen:
			green++
		case classify.VerdictRed:
			red++
		}
	}
	return classify.Rollup(green, red, total, p)
}

type entityVerdicts struct {
	name     string
	global   classify.Verdict
	verdicts map[string]classify.Verdict
}

// Accumulator records per-entity verdicts in processing order. It has a
// single owner and is not safe for concurrent use.
type Accumulator struct {
	params     classify.Params
	properties []string
	seen       map[string]struct{}
	entities   []entityVerdicts
}

// NewAccumulator returns an empty accumulator that grades entities with p.
func NewAccumulator(p classify.Params) *Accumulator {
	return &Accumulator{params: p, seen: make(map[string]struct{})}
}

// Add records one entity. When a property appears twice the first verdict is
// kept. It returns the entity's global verdict.
func (a *Accumulator) Add(entity string, verdicts []PropertyVerdict) classify.Verdict {
	ev := entityVerdicts{name: entity, verdicts: make(map[string]classify.Verdict, len(verdicts))}
	graded := make([]classify.Verdict, 0, len(verdicts))
	for _, pv := range verdicts {
		if _, dup := ev.verdicts[pv.Property]; dup {
			continue
		}
		ev.verdicts[pv.Property] = pv.Verdict
		graded = append(graded, pv.Verdict)
		if _, ok := a.seen[pv.Property]; !ok {
			a.seen[pv.Property] = struct{}{}
			a.properties = append(a.properties, pv.Property)
		}
	}
	ev.global = Global(graded, a.params)
	a.entities = append(a.entities, ev)
	return ev.global
}

// Len returns the number of recorded entities.
func (a *Accumulator) Len() int { return len(a.entities) }

// Properties returns the first-seen property order.
func (a *Accumulator) Properties() []string {
	return append([]string(nil), a.properties...)
}

// Summary is the property by entity verdict grid plus the GLOBAL row.
type Summary struct {
	Entities []string     `json:"entities"`
	Rows     []SummaryRow `json:"rows"`
}

// SummaryRow holds one property's verdict per entity. An empty Verdict means
// the entity had no row for the property.
type SummaryRow struct {
	Property string             `json:"property"`
	Verdicts []classify.Verdict `json:"verdicts"`
}

// Global returns the GLOBAL row, if present.
func (s Summary) Global() (SummaryRow, bool) {
	for _, row := range s.Rows {
		if row.Property == GlobalRow {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// Summary builds the grid: properties in first-seen order followed by
// GLOBAL, entities in processing order.
func (a *Accumulator) Summary() Summary {
	s := Summary{Entities: make([]string, len(a.entities))}
	for i, ev := range a.entities {
		s.Entities[i] = ev.name
	}
	for _, prop := range a.properties {
		row := SummaryRow{Property: prop, Verdicts: make([]classify.Verdict, len(a.entities))}
		for i, ev := range a.entities {
			row.Verdicts[i] = ev.verdicts[prop]
		}
		s.Rows = append(s.Rows, row)
	}
	global := SummaryRow{Property: GlobalRow, Verdicts: make([]classify.Verdict, len(a.entities))}
	for i, ev := range a.entities {
		global.Verdicts[i] = ev.global
	}
	s.Rows = append(s.Rows, global)
	return s
}
