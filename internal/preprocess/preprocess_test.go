package preprocess

import (
	"errors"
	"reflect"
	"testing"
)

func TestRunValidatesAndLowercases(t *testing.T) {
	got, err := Run([]string{"example.com", "site.com.", "GO.com"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Reversed-lexicographic order: "moc.elpmaxe" < "moc.etis" < "moc.og".
	want := []string{"example.com", "site.com", "go.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}

func TestRunPrunesSubdomains(t *testing.T) {
	got, err := Run([]string{"example.com", "api.example.com"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Run() = %v, want %v", got, want)
	}
}

func TestRunRejectsTopLevel(t *testing.T) {
	_, err := Run([]string{"com"})
	if !errors.Is(err, ErrTopLevelDomain) {
		t.Fatalf("Run() err = %v, want ErrTopLevelDomain", err)
	}
}

func TestRunRejectsInvalidCharacters(t *testing.T) {
	_, err := Run([]string{"white space.com"})
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("Run() err = %v, want ErrBadValue", err)
	}
}

func TestRunRejectsOverlong(t *testing.T) {
	long := make([]byte, MaxPatternLen+1)
	for i := range long {
		long[i] = 'a'
	}
	long[0] = 'x'
	long[10] = '.'
	_, err := Run([]string{string(long)})
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("Run() err = %v, want ErrBadValue", err)
	}
}

func TestRunRejectsEmptyAfterTrim(t *testing.T) {
	_, err := Run([]string{"..."})
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("Run() err = %v, want ErrBadValue", err)
	}
}

func TestRunAllowsEmptyLabel(t *testing.T) {
	got, err := Run([]string{"a..b.com"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 1 || got[0] != "a..b.com" {
		t.Fatalf("Run() = %v, want [a..b.com]", got)
	}
}

func TestReversedLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"example.com", "api.example.com", true},
		{"api.example.com", "example.com", false},
		{"a.com", "b.com", true},
		{"com", "example.com", true},
	}
	for _, tt := range tests {
		if got := reversedLess(tt.a, tt.b); got != tt.want {
			t.Errorf("reversedLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsSuffixOrEqual(t *testing.T) {
	tests := []struct {
		p, base string
		want    bool
	}{
		{"example.com", "example.com", true},
		{"api.example.com", "example.com", true},
		{"notexample.com", "example.com", false},
		{"example.com", "api.example.com", false},
	}
	for _, tt := range tests {
		if got := isSuffixOrEqual(tt.p, tt.base); got != tt.want {
			t.Errorf("isSuffixOrEqual(%q, %q) = %v, want %v", tt.p, tt.base, got, tt.want)
		}
	}
}
