package task

import (
	"regexp"
	"testing"
)

func TestHashOfDeterministic(t *testing.T) {
	a := HashOf("code", "sprint", "refactor store")
	b := HashOf("code", "sprint", "refactor store")
	if a != b {
		t.Errorf("hash not deterministic: %q vs %q", a, b)
	}
}

func TestHashOfKnownValues(t *testing.T) {
	tests := []struct {
		typ, tag, name string
		want           string
	}{
		{"code", "sprint", "refactor store", "849130"},
		{"code", "sprint", "refactor", "327943"},
		{"writing", "blog", "drafts", "196972"},
		{"book", "reading", "go in practice", "797699"},
		{"", "", "", "178366"},
	}

	for _, tt := range tests {
		got := HashOf(tt.typ, tt.tag, tt.name)
		if got != tt.want {
			t.Errorf("HashOf(%q, %q, %q) = %q, want %q", tt.typ, tt.tag, tt.name, got, tt.want)
		}
	}
}

func TestHashOfFormat(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[0-9]{6}$`)

	inputs := []Descriptor{
		{"code", "sprint", "refactor store"},
		{"a", "b", "c"},
		{"", "", ""},
		{"x", "", ""},
	}

	for _, d := range inputs {
		got := d.Hash()
		if !sixDigits.MatchString(got) {
			t.Errorf("Hash(%+v) = %q, want exactly 6 decimal digits", d, got)
		}
	}
}

// Field boundaries are not separated before hashing, so shifting text
// between fields produces the same ID. This pins the known weakness.
func TestHashOfFieldBoundaryCollision(t *testing.T) {
	a := HashOf("a", "b", "cd")
	b := HashOf("ab", "", "cd")
	if a != b {
		t.Errorf("expected boundary collision, got %q vs %q", a, b)
	}
	if a != "762335" {
		t.Errorf("collision hash = %q, want 762335", a)
	}
}

func TestDescriptorValid(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want bool
	}{
		{Descriptor{"code", "sprint", "refactor"}, true},
		{Descriptor{"", "sprint", "refactor"}, false},
		{Descriptor{"code", "", "refactor"}, false},
		{Descriptor{"code", "sprint", ""}, false},
		{Descriptor{}, false},
	}

	for _, tt := range tests {
		if got := tt.d.Valid(); got != tt.want {
			t.Errorf("Valid(%+v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}
