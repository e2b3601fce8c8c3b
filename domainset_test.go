package hipermap

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/starius/hipermap/internal/hashing"
)

func TestCompileAndFind(t *testing.T) {
	ds, err := Compile([]string{"example.com", "images.google.com"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	cases := []struct {
		query string
		want  Result
	}{
		{"example.com", Found},
		{"a.example.com", Found},
		{"images.google.com", Found},
		{"sub.images.google.com", Found},
		{"google.com", NotFound},
		{"example.org", NotFound},
	}
	for _, tt := range cases {
		if got := ds.Find([]byte(tt.query)); got != tt.want {
			t.Errorf("Find(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestCompileRejectsEmpty(t *testing.T) {
	_, err := Compile(nil)
	if !errors.Is(err, ErrNoPatterns) {
		t.Fatalf("Compile(nil) err = %v, want ErrNoPatterns", err)
	}
}

func TestCompileRejectsTopLevel(t *testing.T) {
	_, err := Compile([]string{"com"})
	if !errors.Is(err, ErrTopLevelDomain) {
		t.Fatalf("Compile([\"com\"]) err = %v, want ErrTopLevelDomain", err)
	}
	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("Compile([\"com\"]) err = %v, want *PatternError", err)
	}
	if pe.Pattern != "com" {
		t.Errorf("PatternError.Pattern = %q, want %q", pe.Pattern, "com")
	}
}

func TestCompileRejectsInvalidCharacter(t *testing.T) {
	_, err := Compile([]string{"exa mple.com"})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("Compile err = %v, want ErrInvalidPattern", err)
	}
}

func TestCompilePrunesSubdomains(t *testing.T) {
	ds, err := Compile([]string{"example.com", "a.example.com", "b.a.example.com"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ds.UsedTotal() != 1 {
		t.Fatalf("UsedTotal() = %d, want 1 (every pattern is a subdomain of example.com)", ds.UsedTotal())
	}
	if got := ds.Find([]byte("b.a.example.com")); got != Found {
		t.Errorf("Find(b.a.example.com) = %v, want Found", got)
	}
}

func TestMustCompilePanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile did not panic on an invalid pattern")
		}
	}()
	MustCompile([]string{"com"})
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	ds, err := Compile([]string{"example.com", "images.google.com", "a.b.c.d.e"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	buf := ds.Serialize()
	ds2, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	for _, q := range []string{"example.com", "a.images.google.com", "x.a.b.c.d.e", "nope.org"} {
		if got, want := ds2.Find([]byte(q)), ds.Find([]byte(q)); got != want {
			t.Errorf("Deserialize().Find(%q) = %v, want %v (matching original)", q, got, want)
		}
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	_, err := Deserialize([]byte("not a database"))
	if !errors.Is(err, ErrSmallPlace) && !errors.Is(err, ErrBadValue) {
		t.Fatalf("Deserialize(garbage) err = %v, want ErrSmallPlace or ErrBadValue", err)
	}
}

func TestCompileIntoUndersizedBuffer(t *testing.T) {
	patterns := []string{"example.com"}
	_, err := CompileInto(patterns, make([]byte, 8))
	if !errors.Is(err, ErrSmallPlace) {
		t.Fatalf("CompileInto(tiny buffer) err = %v, want ErrSmallPlace", err)
	}
}

func TestCompileTooManyPopular(t *testing.T) {
	var patterns []string
	for g := 0; g < 301; g++ {
		for m := 0; m < 20; m++ {
			patterns = append(patterns, fmt.Sprintf("h%d.g%d.popular.example", m, g))
		}
	}
	_, err := Compile(patterns)
	if !errors.Is(err, ErrTooManyPopular) {
		t.Fatalf("Compile() err = %v, want ErrTooManyPopular", err)
	}
}

func TestFindDeterminismUnderFixedSeed(t *testing.T) {
	patterns := []string{"example.com", "images.google.com", "a.b.c"}
	ds1, err := Compile(patterns)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ds2, err := Compile(patterns)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !bytesEqual(ds1.Serialize(), ds2.Serialize()) {
		t.Fatal("Compile(same input) produced different serialized bytes")
	}
}

func TestHash64SpanCIMatchesChaining(t *testing.T) {
	// Hash64SpanCI must chain the same way the build/query pipeline does:
	// Hash64SpanCI(label, Hash64SpanCI(nextLabel, seed)) folds labels
	// right-to-left without concatenation.
	const seed = uint64(7)
	inner := Hash64SpanCI([]byte("com"), seed)
	outer := Hash64SpanCI([]byte("example"), inner)
	if outer == 0 {
		t.Fatal("Hash64SpanCI returned 0, suspiciously unlikely for a real hash")
	}
	if Hash64SpanCI([]byte("example"), inner) != outer {
		t.Fatal("Hash64SpanCI is not deterministic for identical inputs")
	}
	if want := hashing.Hash64([]byte("example"), hashing.Hash64([]byte("com"), seed)); outer != want {
		t.Fatalf("Hash64SpanCI chain = %#x, want %#x (internal/hashing chain)", outer, want)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func FuzzDomainSetFind(f *testing.F) {
	ds, err := Compile([]string{"example.com", "images.google.com", "a.b.c.d.e"})
	if err != nil {
		f.Fatalf("Compile: %v", err)
	}
	f.Add("example.com")
	f.Add("a.example.com")
	f.Add("")
	f.Add(strings.Repeat("x.", 121) + "example.com")

	f.Fuzz(func(t *testing.T, query string) {
		_ = ds.Find([]byte(query))
	})
}
