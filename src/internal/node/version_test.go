package node

import (
	"errors"
	"testing"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		major int
		minor int
		patch int
	}{
		{name: "plain triple", input: "20.11.0", major: 20, minor: 11, patch: 0},
		{name: "v prefix", input: "v18.19.0", major: 18, minor: 19, patch: 0},
		{name: "major only", input: "20", major: 20, minor: 0, patch: 0},
		{name: "major minor", input: "16.20", major: 16, minor: 20, patch: 0},
		{name: "surrounding whitespace", input: "  v20.11.1  ", major: 20, minor: 11, patch: 1},
		{name: "zero version", input: "0.12.18", major: 0, minor: 12, patch: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if v.IsAlias() {
				t.Fatalf("Parse(%q) produced alias %q, want numeric", tt.input, v.Name)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
					tt.input, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
		})
	}
}

func TestParseAlias(t *testing.T) {
	tests := []string{"latest", "lts", "lts/iron", "system", "20.11.0-nightly"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}
			if !v.IsAlias() {
				t.Errorf("Parse(%q).IsAlias() = false, want true", input)
			}
			if v.String() != input {
				t.Errorf("Parse(%q).String() = %q, want %q", input, v.String(), input)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("Parse(\"\") expected error, got nil")
	}
	if _, err := Parse("   "); err == nil {
		t.Error("Parse(\"   \") expected error, got nil")
	}
}

// Numeric versions must round-trip through parse and format.
func TestStringRoundTrip(t *testing.T) {
	tests := []string{"20.11.0", "18.19.0", "0.12.18", "16.20.2"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}
			if got := v.String(); got != input {
				t.Errorf("String() = %q, want %q", got, input)
			}
		})
	}
}

func TestStringConstructed(t *testing.T) {
	v := Version{Major: 20, Minor: 11, Patch: 0}
	if got := v.String(); got != "20.11.0" {
		t.Errorf("String() = %q, want %q", got, "20.11.0")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "major greater", a: "20.11.0", b: "18.19.0", want: 1},
		{name: "major lesser", a: "18.19.0", b: "20.11.0", want: -1},
		{name: "minor decides", a: "20.12.0", b: "20.11.9", want: 1},
		{name: "patch decides", a: "20.11.1", b: "20.11.0", want: 1},
		{name: "equal", a: "20.11.0", b: "20.11.0", want: 0},
		{name: "partial zero fills", a: "20", b: "20.0.0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParse(tt.a)
			b := MustParse(tt.b)
			got, err := a.Compare(b)
			if err != nil {
				t.Fatalf("Compare error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareAliasDisallowed(t *testing.T) {
	numeric := MustParse("20.11.0")
	alias := Alias("lts")

	if _, err := numeric.Compare(alias); !errors.Is(err, ErrAliasCompare) {
		t.Errorf("Compare(numeric, alias) error = %v, want ErrAliasCompare", err)
	}
	if _, err := alias.Compare(numeric); !errors.Is(err, ErrAliasCompare) {
		t.Errorf("Compare(alias, numeric) error = %v, want ErrAliasCompare", err)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Version
		b    Version
		want bool
	}{
		{name: "equal aliases", a: Alias("lts"), b: Alias("lts"), want: true},
		{name: "different aliases", a: Alias("lts"), b: Alias("latest"), want: false},
		{name: "equal numerics", a: MustParse("20.11.0"), b: MustParse("v20.11.0"), want: true},
		{name: "different numerics", a: MustParse("20.11.0"), b: MustParse("20.11.1"), want: false},
		{name: "numeric never equals alias", a: MustParse("20.11.0"), b: Alias("20-lts"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestInstalledString(t *testing.T) {
	iv := Installed{Version: MustParse("20.11.0"), Default: true}
	if got := iv.String(); got != "v20.11.0 (default)" {
		t.Errorf("String() = %q, want %q", got, "v20.11.0 (default)")
	}

	plain := Installed{Version: MustParse("18.19.0")}
	if got := plain.String(); got != "v18.19.0" {
		t.Errorf("String() = %q, want %q", got, "v18.19.0")
	}
}

func TestRemoteString(t *testing.T) {
	rv := Remote{Version: MustParse("20.11.0"), Codename: "Iron", LTS: true}
	if got := rv.String(); got != "v20.11.0 (Iron)" {
		t.Errorf("String() = %q, want %q", got, "v20.11.0 (Iron)")
	}
}
