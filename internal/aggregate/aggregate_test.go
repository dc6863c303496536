package aggregate_test

import (
	"reflect"
	"testing"

	"crudeval/internal/aggregate"
	"crudeval/internal/classify"
)

const (
	green  = classify.VerdictGreen
	yellow = classify.VerdictYellow
	red    = classify.VerdictRed
	na     = classify.VerdictNA
	empty  = classify.VerdictEmpty
)

func TestGlobal(t *testing.T) {
	p := classify.Params{PctGreenForGreen: 0.90, PctRedForRed: 0.30}
	tests := []struct {
		name     string
		verdicts []classify.Verdict
		want     classify.Verdict
	}{
		{"one red in three", []classify.Verdict{green, green, red}, red},
		{"all green", []classify.Verdict{green, green, na}, green},
		{"mixed", []classify.Verdict{green, yellow}, yellow},
		{"nothing graded", []classify.Verdict{na, empty}, empty},
		{"no verdicts", nil, empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aggregate.Global(tt.verdicts, p); got != tt.want {
				t.Fatalf("Global = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAccumulatorSummaryKeepsFirstSeenOrder(t *testing.T) {
	acc := aggregate.NewAccumulator(classify.DefaultParams())

	g1 := acc.Add("MAYA", []aggregate.PropertyVerdict{
		{Property: "DENSIDAD", Verdict: green},
		{Property: "API", Verdict: green},
		{Property: "AZUFRE", Verdict: red},
	})
	g2 := acc.Add("OLMECA", []aggregate.PropertyVerdict{
		{Property: "VOLUMEN", Verdict: green},
		{Property: "DENSIDAD", Verdict: green},
		{Property: "DENSIDAD", Verdict: red},
	})
	if g1 != red || g2 != green {
		t.Fatalf("unexpected globals %s, %s", g1, g2)
	}

	s := acc.Summary()
	if !reflect.DeepEqual(s.Entities, []string{"MAYA", "OLMECA"}) {
		t.Fatalf("entities = %v", s.Entities)
	}
	var props []string
	for _, row := range s.Rows {
		props = append(props, row.Property)
	}
	if !reflect.DeepEqual(props, []string{"DENSIDAD", "API", "AZUFRE", "VOLUMEN", aggregate.GlobalRow}) {
		t.Fatalf("row order = %v", props)
	}
	if !reflect.DeepEqual(s.Rows[1].Verdicts, []classify.Verdict{green, ""}) {
		t.Fatalf("expected blank cell for missing property, got %v", s.Rows[1].Verdicts)
	}
	if s.Rows[0].Verdicts[1] != green {
		t.Fatalf("expected first duplicate verdict to win, got %v", s.Rows[0].Verdicts)
	}
	global, ok := s.Global()
	if !ok || !reflect.DeepEqual(global.Verdicts, []classify.Verdict{red, green}) {
		t.Fatalf("global row = %+v", global)
	}
	if acc.Len() != 2 || len(acc.Properties()) != 4 {
		t.Fatalf("unexpected accumulator state len=%d props=%v", acc.Len(), acc.Properties())
	}
}

func TestEmptyAccumulatorSummary(t *testing.T) {
	s := aggregate.NewAccumulator(classify.DefaultParams()).Summary()
	if len(s.Entities) != 0 || len(s.Rows) != 1 || s.Rows[0].Property != aggregate.GlobalRow {
		t.Fatalf("unexpected empty summary %+v", s)
	}
}
