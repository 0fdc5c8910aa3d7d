package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, so
// "José" and "Jose" fold to the same bytes.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold produces the canonical comparison form of a string: trimmed,
// lowercased, accents removed. Empty input folds to "".
func Fold(s string) string {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, trimmed)
	if err != nil {
		return trimmed
	}
	return folded
}

// Identity holds the canonical comparison key for a person plus every
// alias key that should resolve to the same record.
type Identity struct {
	Canonical string
	Aliases   []string
}

// NewIdentity folds name, email and badge serial into an Identity.
// The canonical key prefers name, then serial, then email. The second
// return value is false when all three inputs are empty: the record is
// unkeyable and the caller must drop it.
func NewIdentity(name, email, serial string) (Identity, bool) {
	nameKey := Fold(name)
	emailKey := Fold(email)
	serialKey := Fold(serial)

	canonical := nameKey
	if canonical == "" {
		canonical = serialKey
	}
	if canonical == "" {
		canonical = emailKey
	}
	if canonical == "" {
		return Identity{}, false
	}

	seen := map[string]bool{}
	var aliases []string
	for _, key := range []string{nameKey, emailKey, serialKey} {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		aliases = append(aliases, key)
	}
	return Identity{Canonical: canonical, Aliases: aliases}, true
}

// Matches reports whether a folded lookup key resolves to this identity.
func (id Identity) Matches(key string) bool {
	folded := Fold(key)
	if folded == "" {
		return false
	}
	for _, alias := range id.Aliases {
		if alias == folded {
			return true
		}
	}
	return false
}
