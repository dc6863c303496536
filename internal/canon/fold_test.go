package canon

import "testing"

func TestPropertyFolding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"alias with degree mark", "Densidad a 15ºC", "DENSIDAD"},
		{"alias with degree sign and spacing", "  densidad   a 15°C ", "DENSIDAD"},
		{"diacritics stripped", "Nitrógeno total", "NITROGENO"},
		{"dots removed", "Visc. cinem.", "VISC CINEM"},
		{"unknown passes through", "Indice de refraccion", "INDICE DE REFRACCION"},
		{"punctuation only", " . º ", ""},
		{"empty", "", ""},
		{"percent kept", "% Peso", "PESO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Property(tt.raw, DefaultAliases()); got != tt.want {
				t.Fatalf("Property(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPropertyNilAliases(t *testing.T) {
	if got := Property("Densidad a 15ºC", nil); got != "DENSIDAD A 15C" {
		t.Fatalf("unexpected key without aliases: %q", got)
	}
}

func TestPropertyIdempotent(t *testing.T) {
	inputs := []string{
		"Densidad a 15ºC", "Azufre total", "Peso acum %", "Viscosidad a 50ºC",
		"ÁCIDO   sulfhídrico", "Temp. 10°", "TAN", "x", "Punto de escurrimiento",
	}
	aliases := DefaultAliases()
	for _, raw := range inputs {
		once := Property(raw, aliases)
		twice := Property(once, aliases)
		if once != twice {
			t.Fatalf("Property not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestCutDashAndSpaceNormalization(t *testing.T) {
	want := Cut("260-300")
	if want != "260-300" {
		t.Fatalf("ascii form = %q", want)
	}
	variants := []string{
		"260\u2013300",            // en dash
		"260\u2014300",            // em dash
		"260\u2212300",            // minus sign
		"260 - 300",                // spaced hyphen
		"260\u00a0-\u00a0300",      // non-breaking spaces
		"260\u2009\u2013\u2009300", // thin spaces around en dash
		" 260-300 ",
	}
	for _, v := range variants {
		if got := Cut(v); got != want {
			t.Fatalf("Cut(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestCutFolding(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"c6", "C6"},
		{"300 ºC +", "300C+"},
		{"PI - 80°", "PI-80"},
		{"C1 ", "C1"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Cut(tt.raw); got != tt.want {
			t.Fatalf("Cut(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCutIdempotent(t *testing.T) {
	for _, raw := range []string{"260 – 300", "c10", "350 ºC+", "PI - C5", "Residuo 540+"} {
		once := Cut(raw)
		if twice := Cut(once); twice != once {
			t.Fatalf("Cut not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestBaseIdentifier(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ISA_Crudo_Maya.xlsx", "CRUDOMAYA"},
		{"RAMS-Crudo_Maya.xlsx", "CRUDOMAYA"},
		{"crudo_maya_ISA.xlsx", "CRUDOMAYA"},
		{"crudo_maya_RAMS.csv", "CRUDOMAYA"},
		{"Crudo Máya.xlsx", "CRUDOMAYA"},
		{"Crudo-Maya.xlsx", "CRUDOMAYA"},
		{"CrudoMaya.xlsx", "CRUDOMAYA"},
		{"crudo maya RAMS v2.xlsx", "CRUDOMAYA"},
		{"Crudo_Maya_rams_3.xlsx", "CRUDOMAYA"},
		{"isa-crudo-maya.csv", "CRUDOMAYA"},
		{"ISACrudo_Istmo.xlsx", "CRUDOISTMO"},
		{"MayaRAMS.xlsx", "MAYA"},
		{"RAMSOlmeca.csv", "OLMECA"},
		{"OlmecaISA2.csv", "OLMECA"},
		{"ISA.xlsx", ""},
		{"Marisa.xlsx", "MARISA"},
		{"Isabel.xlsx", "ISABEL"},
		{"rams-Isabel.xlsx", "ISABEL"},
		{"RAMS_mya-2024-17_final.xlsx", "MYA-2024-17"},
		{"/data/ref/ISA abc-1234-5.xlsx", "ABC-1234-5"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := BaseIdentifier(tt.raw); got != tt.want {
				t.Fatalf("BaseIdentifier(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	if got := Header("  tipo   de  Válor "); got != "TIPO DE VALOR" {
		t.Fatalf("Header = %q", got)
	}
}
