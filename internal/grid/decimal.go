package grid

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	commaGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(?:,\d{3})+$`)
	dotGrouped   = regexp.MustCompile(`^[+-]?\d{1,3}(?:\.\d{3})+$`)
)

// ParseDecimal reads a numeric cell written with either '.' or ',' as the
// decimal separator. When both appear, the rightmost one is the decimal
// separator and the other groups thousands. Thousands groups must be exactly
// three digits. Empty, non-numeric, hexadecimal and non-finite cells report
// ok=false.
func ParseDecimal(raw string) (float64, bool) {
	value := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), unicode.Is(unicode.Zs, r):
			return -1
		case r == '\u2212':
			return '-'
		}
		return r
	}, raw)
	if value == "" || strings.ContainsAny(value, "xX") {
		return 0, false
	}

	comma := strings.LastIndexByte(value, ',')
	dot := strings.LastIndexByte(value, '.')
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			whole := value[:comma]
			if !dotGrouped.MatchString(whole) {
				return 0, false
			}
			value = strings.ReplaceAll(whole, ".", "") + "." + value[comma+1:]
		} else {
			whole := value[:dot]
			if !commaGrouped.MatchString(whole) {
				return 0, false
			}
			value = strings.ReplaceAll(whole, ",", "") + value[dot:]
		}
	case comma >= 0:
		if strings.Count(value, ",") == 1 {
			value = strings.Replace(value, ",", ".", 1)
		} else if commaGrouped.MatchString(value) {
			value = strings.ReplaceAll(value, ",", "")
		} else {
			return 0, false
		}
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}
