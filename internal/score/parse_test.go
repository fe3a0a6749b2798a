package score

import (
	"errors"
	"testing"
)

func TestParseCategoryAliases(t *testing.T) {
	tests := map[string]Category{
		"1":              Ones,
		"1s":             Ones,
		"ONES":           Ones,
		" sixes ":        Sixes,
		"6s":             Sixes,
		"c":              Choice,
		"Choice":         Choice,
		"fh":             FullHouse,
		"FullHouse":      FullHouse,
		"k":              FourOfKind,
		"four-of-a-kind": FourOfKind,
		"ss":             SmallStraight,
		"l":              LargeStraight,
		"y":              Yacht,
		"Yacht":          Yacht,
	}
	for alias, want := range tests {
		got, err := ParseCategory(alias)
		if err != nil {
			t.Fatalf("parse %q: %v", alias, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", alias, want, got)
		}
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	for _, alias := range []string{"", "7", "bonus", "total", "yachts"} {
		if _, err := ParseCategory(alias); !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory for %q, got %v", alias, err)
		}
	}
}

func TestKeyAliasesMatchShortcuts(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c.Key()))
		if err != nil {
			t.Fatalf("shortcut %q of %s is not an alias: %v", c.Key(), c, err)
		}
		if got != c {
			t.Fatalf("shortcut %q resolves to %s, expected %s", c.Key(), got, c)
		}
		byKey, ok := CategoryForKey(c.Key())
		if !ok || byKey != c {
			t.Fatalf("CategoryForKey(%q) = %s, %t", c.Key(), byKey, ok)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint16
		wantErr bool
	}{
		{raw: "12", want: 12},
		{raw: " 7 ", want: 7},
		{raw: "true", want: 1},
		{raw: "T", want: 1},
		{raw: "false", want: 0},
		{raw: "f", want: 0},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "70000", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidScore) {
				t.Fatalf("expected ErrInvalidScore for %q, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestParseClaim(t *testing.T) {
	for _, raw := range []string{"y", "yes", "TRUE", "t", "1", "15"} {
		claimed, err := ParseClaim(SmallStraight, raw)
		if err != nil || !claimed {
			t.Fatalf("expected %q to claim, got %t %v", raw, claimed, err)
		}
	}
	for _, raw := range []string{"n", "no", "false", "F", "0", "x", "-"} {
		claimed, err := ParseClaim(SmallStraight, raw)
		if err != nil || claimed {
			t.Fatalf("expected %q to fail claim, got %t %v", raw, claimed, err)
		}
	}
	if _, err := ParseClaim(SmallStraight, "30"); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected wrong award to be rejected, got %v", err)
	}
}

func TestBuildInput(t *testing.T) {
	in, err := BuildInput(Threes, "9")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if in.Category() != Threes || in.Value() != Some(9) {
		t.Fatalf("unexpected input %s", in)
	}

	in, err = BuildInput(Choice, "-")
	if err != nil {
		t.Fatalf("build clear: %v", err)
	}
	if in.Value().Set {
		t.Fatalf("expected clearing input, got %s", in)
	}

	in, err = BuildInput(Yacht, "yes")
	if err != nil {
		t.Fatalf("build claim: %v", err)
	}
	if !in.Claimed() {
		t.Fatalf("expected claimed yacht, got %s", in)
	}

	if _, err := BuildInput(Fives, "lots"); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}
