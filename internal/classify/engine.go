package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"crudeval/internal/deviation"
	"crudeval/internal/thresholds"
)

const (
	overrideFactor    = 3.0
	specialTierFactor = 2.0
	heavyRangeStart   = 299.0
)

var (
	heavyToken = regexp.MustCompile(`(?:^|[^A-Z0-9])C(?:10|[6-9])(?:[^0-9]|$)`)
	rangeStart = regexp.MustCompile(`^[^0-9]*(\d+(?:[.,]\d+)?)(?:-|\+)`)
)

// specialTierPrefixes select the density and sulfur families.
var specialTierPrefixes = []string{"DENSIDAD", "AZUFRE", "SULFUR"}

// IsHeavyCut reports whether a canonical cut key uses the heavy tolerance:
// it names a C6..C10 carbon fraction, or a boiling range or plus fraction
// starting at 299 or above. Only the first number counts, and a non-numeric
// prefix ("FR299-350", "(300+)") is skipped.
func IsHeavyCut(cut string) bool {
	key := strings.ToUpper(cut)
	if heavyToken.MatchString(key) {
		return true
	}
	m := rangeStart.FindStringSubmatch(key)
	if m == nil {
		return false
	}
	start, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return false
	}
	return start >= heavyRangeStart
}

// IsSpecialTier reports whether a canonical property belongs to the density
// or sulfur families.
func IsSpecialTier(prop string) bool {
	for _, prefix := range specialTierPrefixes {
		if strings.HasPrefix(prop, prefix) {
			return true
		}
	}
	return false
}

// Classify grades every cell of a property row and rolls the result up.
// It never fails: unusable cells degrade to NON_NUMERIC or NO_THRESHOLD.
func Classify(prop string, cells []deviation.Cell, matrix *thresholds.Matrix, p Params) PropertyResult {
	result := PropertyResult{Property: prop, Cuts: make([]CutResult, 0, len(cells))}
	special := IsSpecialTier(prop)
	worstRatio := math.Inf(-1)

	for _, cell := range cells {
		cr := CutResult{Cut: cell.Cut}

		if !cell.Present || math.IsNaN(cell.Error) || math.IsInf(cell.Error, 0) {
			cr.Class = CellNonNumeric
			result.Counts.NonNumeric++
			result.Cuts = append(result.Cuts, cr)
			continue
		}
		cr.Error = cell.Error
		cr.HasError = true
		result.Counts.Values++

		threshold, ok := matrix.Lookup(prop, cell.Cut)
		if !ok {
			cr.Class = CellNoThreshold
			result.Counts.NoThreshold++
			result.Cuts = append(result.Cuts, cr)
			continue
		}
		cr.Threshold = threshold
		cr.HasThreshold = true
		result.Counts.Valid++

		if ratio := cell.Error / threshold; ratio > worstRatio {
			worstRatio = ratio
			result.WorstCut = cell.Cut
			result.WorstError = cell.Error
			result.WorstThreshold = threshold
			result.HasWorst = true
		}

		switch {
		case cell.Error > overrideFactor*threshold:
			cr.Class = CellRed
			result.HardRed = true
		case special:
			cr.Class = classifySpecial(cell.Error, threshold)
		default:
			cr.Heavy = IsHeavyCut(cell.Cut)
			tol := p.Tol
			if cr.Heavy {
				tol = p.TolHeavy
			}
			cr.Class = classifyStandard(cell.Error, threshold, tol)
		}

		switch cr.Class {
		case CellGreen:
			result.Counts.Green++
		case CellYellow:
			result.Counts.Yellow++
		case CellRed:
			result.Counts.Red++
		}
		result.Cuts = append(result.Cuts, cr)
	}

	result.Verdict = rollupProperty(result, matrix, p)
	return result
}

// classifySpecial keeps the 3x branch even though the override already
// caught every error above it.
func classifySpecial(err, threshold float64) CellClass {
	switch {
	case err <= specialTierFactor*threshold:
		return CellGreen
	case err <= overrideFactor*threshold:
		return CellYellow
	default:
		return CellRed
	}
}

func classifyStandard(err, threshold, tol float64) CellClass {
	switch {
	case err <= threshold:
		return CellGreen
	case err <= threshold*(1+tol):
		return CellYellow
	default:
		return CellRed
	}
}

func rollupProperty(r PropertyResult, matrix *thresholds.Matrix, p Params) Verdict {
	switch {
	case r.Counts.Values == 0:
		return VerdictEmpty
	case !matrix.HasProperty(r.Property) || r.Counts.Valid == 0:
		return VerdictNA
	case r.HardRed:
		return VerdictRed
	}
	return Rollup(r.Counts.Green, r.Counts.Red, r.Counts.Valid, p)
}

// Rollup applies the two-percentage rule: RED when the red share exceeds
// PctRedForRed, else GREEN when the green share reaches PctGreenForGreen,
// else YELLOW. A zero total yields EMPTY.
func Rollup(green, red, total int, p Params) Verdict {
	if total <= 0 {
		return VerdictEmpty
	}
	n := float64(total)
	if float64(red)/n > p.PctRedForRed {
		return VerdictRed
	}
	if float64(green)/n >= p.PctGreenForGreen {
		return VerdictGreen
	}
	return VerdictYellow
}
