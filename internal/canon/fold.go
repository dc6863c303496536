package canon

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// propertyStripper removes the punctuation that assay sheets sprinkle into
// property labels ("Dens. a 15ºC", "Temp. 10°").
var propertyStripper = strings.NewReplacer(".", "", "º", "", "°", "")

var (
	structuredCode = regexp.MustCompile(`[A-Za-z]{3}-\d{4}-\d+`)
	spacedDash     = regexp.MustCompile(` *- *`)

	// Any casing is accepted when a separator delimits the marker. Glued to
	// the name ("ISACrudo", "MayaRAMS") only the all-caps spelling counts,
	// so "Isabel" and "Marisa" keep their letters.
	leadingKind  = regexp.MustCompile(`(?i)^(ISA|RAMS)(?:[\s_\-.]+|$)`)
	leadingCaps  = regexp.MustCompile(`^(ISA|RAMS)`)
	trailingKind = regexp.MustCompile(`(?i)(?:^|[\s_\-.]+)(ISA|RAMS)(?:[\s_\-.]*V?\d+)?$`)
	trailingCaps = regexp.MustCompile(`(ISA|RAMS)(?:[\s_\-.]*[vV]?\d+)?$`)
)

// StripDiacritics removes combining marks after canonical decomposition, so
// "Máya" becomes "Maya". Characters without a decomposition are kept as is.
func StripDiacritics(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

// Property folds a raw property label and resolves it through aliases. An
// empty result means the row carries no property. A nil alias table behaves
// as an empty one.
func Property(raw string, aliases *Aliases) string {
	key := foldProperty(raw)
	if key == "" {
		return ""
	}
	return aliases.Lookup(key)
}

func foldProperty(raw string) string {
	value := strings.ToUpper(StripDiacritics(raw))
	value = propertyStripper.Replace(value)
	value = strings.Join(strings.Fields(value), " ")
	if !hasAlphanumeric(value) {
		return ""
	}
	return value
}

// Cut folds a cut label into an exact-match key: Unicode spaces become plain
// spaces, every dash-like rune becomes '-', degree marks are dropped and all
// whitespace is removed. No numeric interpretation happens here.
func Cut(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case isDash(r):
			b.WriteByte('-')
		case r == 'º' || r == '°':
		case unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\u200b' || r == '\ufeff':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	value := spacedDash.ReplaceAllString(b.String(), "-")
	value = strings.Join(strings.Fields(value), "")
	return strings.ToUpper(value)
}

func isDash(r rune) bool {
	switch r {
	case '-', '\u2212', '\u2043', '\ufe63', '\uff0d':
		return true
	}
	return unicode.Is(unicode.Pd, r)
}

// BaseIdentifier derives the pairing key of a reference or candidate file
// name. A structured sample code (three letters, four digits, a sequence
// number) wins over every other heuristic. Otherwise the dataset-kind marker
// is removed from either end, together with a trailing version suffix, and
// only letters and digits survive: "Crudo Maya", "Crudo-Maya" and
// "CrudoMaya" share the key CRUDOMAYA.
func BaseIdentifier(rawFilename string) string {
	name := filepath.Base(strings.TrimSpace(rawFilename))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	if code := structuredCode.FindString(name); code != "" {
		return strings.ToUpper(code)
	}

	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = StripDiacritics(name)
	name = stripMarker(name, leadingKind, leadingCaps)
	name = stripMarker(name, trailingKind, trailingCaps)
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name))
}

// stripMarker removes one marker occurrence, preferring the delimited form.
func stripMarker(name string, delimited, glued *regexp.Regexp) string {
	if loc := delimited.FindStringIndex(name); loc != nil {
		return name[:loc[0]] + name[loc[1]:]
	}
	if loc := glued.FindStringIndex(name); loc != nil {
		return name[:loc[0]] + name[loc[1]:]
	}
	return name
}

// Header folds a column header for structural lookups ("Property", "Type").
func Header(raw string) string {
	value := strings.ToUpper(StripDiacritics(raw))
	return strings.Join(strings.Fields(value), " ")
}

func hasAlphanumeric(value string) bool {
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
