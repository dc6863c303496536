package textutil

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the worksheet name limit enforced by spreadsheet
// applications.
const MaxSheetNameLength = 31

// sheetNameReplacer drops characters that worksheet names may not contain.
var sheetNameReplacer = strings.NewReplacer(
	":", "",
	"\\", "",
	"/", "",
	"?", "",
	"*", "",
	"[", "(",
	"]", ")",
)

// SanitizeSheetName turns a label into a valid worksheet name: forbidden
// characters are dropped, surrounding apostrophes trimmed, and the result
// cut to MaxSheetNameLength runes. Empty input yields fallback.
func SanitizeSheetName(name, fallback string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	name = strings.Trim(name, "'")
	name = truncateRunes(strings.TrimSpace(name), MaxSheetNameLength)
	if name == "" {
		return fallback
	}
	return name
}

// SheetNamer hands out unique worksheet names. Names compare
// case-insensitively, as spreadsheet applications do.
type SheetNamer struct {
	used map[string]struct{}
}

// NewSheetNamer reserves the given names up front.
func NewSheetNamer(reserved ...string) *SheetNamer {
	n := &SheetNamer{used: make(map[string]struct{})}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = struct{}{}
	}
	return n
}

// Next returns a sanitized name for label, suffixed with "~2", "~3", ...
// when the name is taken.
func (n *SheetNamer) Next(label string) string {
	base := SanitizeSheetName(label, "Sheet")
	candidate := base
	for i := 2; ; i++ {
		if _, taken := n.used[strings.ToLower(candidate)]; !taken {
			break
		}
		suffix := "~" + strconv.Itoa(i)
		candidate = truncateRunes(base, MaxSheetNameLength-len(suffix)) + suffix
	}
	n.used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
