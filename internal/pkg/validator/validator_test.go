package validator

import "testing"

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"a", false},
		{" a ", false},
	}
	for _, c := range cases {
		if got := IsEmpty(c.in); got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"aluno@hcfisio.com.br",
		"maria.silva+estagio@gmail.com",
		"x_y@sub.example.org",
	}
	invalid := []string{
		"",
		"semarroba.com",
		"@dominio.com",
		"aluno@",
		"aluno@dominio",
	}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric("012345") {
		t.Error("IsNumeric(\"012345\") = false, want true")
	}
	if IsNumeric("12a45") {
		t.Error("IsNumeric(\"12a45\") = true, want false")
	}
	if IsNumeric("") {
		t.Error("IsNumeric(\"\") = true, want false")
	}
}

func TestIsValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2026-01-05", true},
		{"05/01/2026", true},
		{"05-01-2026", true},
		{"2026-13-05", false},
		{"32/01/2026", false},
		{"ontem", false},
		{"", false},
	}
	for _, c := range cases {
		if _, ok := IsValidDate(c.in); ok != c.want {
			t.Errorf("IsValidDate(%q) = %v, want %v", c.in, ok, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	groups := []string{"escala1", "escala2", "sem-escala"}
	if !IsInSlice("escala2", groups) {
		t.Error("expected escala2 to be found")
	}
	if IsInSlice("escala3", groups) {
		t.Error("did not expect escala3 to be found")
	}
}
