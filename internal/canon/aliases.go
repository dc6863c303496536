package canon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Aliases maps folded property spellings onto one canonical property key.
// Tables are immutable after construction; Extend returns a new table.
type Aliases struct {
	entries map[string]string
}

// defaultAliasGroups lists canonical properties and the spellings found in
// the laboratory and prediction workbooks. Spellings are folded on load.
var defaultAliasGroups = map[string][]string{
	"DENSIDAD": {
		"Densidad a 15ºC", "Densidad 15ºC", "Densidad a 15 ºC", "Densidad (15°C)",
		"Density", "Density at 15C", "Density @ 15C",
	},
	"API": {"Gravedad API", "ºAPI", "Grados API", "API Gravity"},
	"AZUFRE": {
		"Azufre total", "Contenido de azufre", "Azufre (% peso)", "Sulfur", "Sulphur", "Total sulfur",
	},
	"AZUFRE MERCAPTANO": {"Mercaptanos", "Azufre mercaptánico", "Mercaptan sulfur"},
	"PESO":              {"% Peso", "Peso %", "Rendimiento en peso", "Yield wt", "Yield % wt"},
	"PESO ACUMULADO":    {"% Peso acumulado", "Peso acum", "Peso acum %", "Cumulative yield wt"},
	"VOLUMEN":           {"% Volumen", "Volumen %", "Rendimiento en volumen", "Yield vol"},
	"ACIDEZ":            {"Número de acidez", "Acidez total", "TAN", "Total acid number"},
	"VISCOSIDAD 50C":    {"Viscosidad a 50ºC", "Viscosidad cinemática a 50ºC", "Viscosity 50C"},
	"VISCOSIDAD 100C":   {"Viscosidad a 100ºC", "Viscosidad cinemática a 100ºC", "Viscosity 100C"},
	"PUNTO DE FLUIDEZ":  {"Punto de escurrimiento", "Pour point"},
	"NITROGENO":         {"Nitrógeno total", "Total nitrogen"},
	"CARBON CONRADSON":  {"Residuo de carbón Conradson", "CCR", "MCR"},
}

// baseAliases lists properties whose thresholds fall back to a broader
// property when the matrix has no entry of their own.
var baseAliases = map[string]string{
	"PESO ACUMULADO": "PESO",
}

var defaultAliases = mustBuildDefault()

func mustBuildDefault() *Aliases {
	a, err := NewAliases(nil)
	if err != nil {
		panic(err)
	}
	a, err = a.Extend(defaultAliasGroups)
	if err != nil {
		panic(err)
	}
	return a
}

// DefaultAliases returns the built-in alias table shared by the process.
func DefaultAliases() *Aliases {
	return defaultAliases
}

// NewAliases builds a table from spelling → canonical pairs. Keys and values
// are folded first; chains are resolved so that lookups always land on a key
// that is not itself an alias. Cycles and empty targets are rejected.
func NewAliases(pairs map[string]string) (*Aliases, error) {
	folded := make(map[string]string, len(pairs))
	keys := make([]string, 0, len(pairs))
	for raw := range pairs {
		keys = append(keys, raw)
	}
	sort.Strings(keys)
	for _, raw := range keys {
		from := foldProperty(raw)
		to := foldProperty(pairs[raw])
		if from == "" {
			continue
		}
		if to == "" {
			return nil, fmt.Errorf("alias %q: canonical property is empty", raw)
		}
		if existing, ok := folded[from]; ok && existing != to {
			return nil, fmt.Errorf("alias %q: conflicting targets %q and %q", raw, existing, to)
		}
		if from != to {
			folded[from] = to
		}
	}

	resolved := make(map[string]string, len(folded))
	for from := range folded {
		target, err := resolveChain(folded, from)
		if err != nil {
			return nil, err
		}
		if target != from {
			resolved[from] = target
		}
	}
	return &Aliases{entries: resolved}, nil
}

func resolveChain(entries map[string]string, start string) (string, error) {
	seen := map[string]struct{}{start: {}}
	current := start
	for {
		next, ok := entries[current]
		if !ok {
			return current, nil
		}
		if _, loop := seen[next]; loop {
			return "", fmt.Errorf("alias cycle through %q", start)
		}
		seen[next] = struct{}{}
		current = next
	}
}

// Extend returns a new table holding the receiver's entries plus groups,
// given as canonical property → spellings. Spellings in groups override the
// receiver's entries; one spelling claimed by two groups is an error.
func (a *Aliases) Extend(groups map[string][]string) (*Aliases, error) {
	pairs := make(map[string]string)
	if a != nil {
		for from, to := range a.entries {
			pairs[from] = to
		}
	}
	claimed := make(map[string]string)
	for canonical, spellings := range groups {
		target := foldProperty(canonical)
		for _, spelling := range spellings {
			from := foldProperty(spelling)
			if from == "" {
				continue
			}
			if owner, ok := claimed[from]; ok && owner != target {
				return nil, fmt.Errorf("alias %q: claimed by %q and %q", spelling, owner, target)
			}
			claimed[from] = target
			pairs[from] = canonical
		}
	}
	return NewAliases(pairs)
}

// Lookup returns the canonical property for an already folded key, or key
// itself when no alias applies.
func (a *Aliases) Lookup(key string) string {
	if a == nil {
		return key
	}
	if target, ok := a.entries[key]; ok {
		return target
	}
	return key
}

// Len reports the number of spellings in the table.
func (a *Aliases) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Spellings returns the folded spellings that resolve to canonical, sorted.
func (a *Aliases) Spellings(canonical string) []string {
	if a == nil {
		return nil
	}
	var out []string
	for from, to := range a.entries {
		if to == canonical {
			out = append(out, from)
		}
	}
	sort.Strings(out)
	return out
}

// BaseAlias returns the broader property whose thresholds apply when prop
// has none of its own.
func BaseAlias(prop string) (string, bool) {
	base, ok := baseAliases[prop]
	return base, ok
}

// LoadAliasFile reads a YAML document mapping canonical properties to lists
// of spellings and returns it as alias groups:
//
//	DENSIDAD:
//	  - Densidad a 20ºC
//	  - Dens. 20C
func LoadAliasFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	var groups map[string][]string
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse alias file %s: %w", path, err)
	}
	for canonical := range groups {
		if strings.TrimSpace(canonical) == "" {
			return nil, fmt.Errorf("parse alias file %s: empty canonical property", path)
		}
	}
	return groups, nil
}
