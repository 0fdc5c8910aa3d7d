package normalize

import (
	"testing"
)

func TestFold(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"José da Silva", "jose da silva"},
		{"  MARIA  ", "maria"},
		{"Conceição", "conceicao"},
		{"joao@hc.usp.br", "joao@hc.usp.br"},
	}
	for _, c := range cases {
		got := Fold(c.input)
		if got != c.want {
			t.Errorf("Fold(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{"José da Silva", "  ÁGATHA  ", "serial-0042", "a@b.cd"}
	for _, s := range inputs {
		once := Fold(s)
		twice := Fold(once)
		if once != twice {
			t.Errorf("Fold not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestNewIdentityCanonicalPriority(t *testing.T) {
	cases := []struct {
		name, email, serial string
		wantCanonical       string
	}{
		{"José da Silva", "jose@hc.br", "ABC123", "jose da silva"},
		{"", "jose@hc.br", "ABC123", "abc123"},
		{"", "jose@hc.br", "", "jose@hc.br"},
	}
	for _, c := range cases {
		id, ok := NewIdentity(c.name, c.email, c.serial)
		if !ok {
			t.Fatalf("NewIdentity(%q, %q, %q) unexpectedly unkeyable", c.name, c.email, c.serial)
		}
		if id.Canonical != c.wantCanonical {
			t.Errorf("NewIdentity(%q, %q, %q).Canonical = %q, want %q", c.name, c.email, c.serial, id.Canonical, c.wantCanonical)
		}
	}
}

func TestNewIdentityUnkeyable(t *testing.T) {
	_, ok := NewIdentity("", "", "")
	if ok {
		t.Error("NewIdentity with all empty fields should be unkeyable")
	}
	_, ok = NewIdentity("   ", "", "  ")
	if ok {
		t.Error("NewIdentity with whitespace-only fields should be unkeyable")
	}
}

func TestNewIdentityCollapsesVariants(t *testing.T) {
	a, _ := NewIdentity("José da Silva", "", "")
	b, _ := NewIdentity("  jose DA silva ", "", "")
	if a.Canonical != b.Canonical {
		t.Errorf("accent/case/space variants did not collapse: %q vs %q", a.Canonical, b.Canonical)
	}
}

func TestIdentityMatches(t *testing.T) {
	id, _ := NewIdentity("José da Silva", "Jose@HC.br", "SN-11")
	for _, key := range []string{"jose da silva", "JOSE@hc.br", " sn-11 "} {
		if !id.Matches(key) {
			t.Errorf("Matches(%q) = false, want true", key)
		}
	}
	if id.Matches("maria") {
		t.Error("Matches(\"maria\") = true, want false")
	}
	if id.Matches("") {
		t.Error("Matches(\"\") = true, want false")
	}
}
