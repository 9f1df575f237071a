package domain

import "testing"

func TestProgressionAdvance(t *testing.T) {
	p := Progression("")
	want := []Progression{"D", "DO", "DON", "DONK", "DONKE", "DONKEY"}
	for _, w := range want {
		next, err := p.Advance()
		if err != nil {
			t.Fatalf("Advance(%q): %v", p, err)
		}
		if next != w {
			t.Fatalf("Advance(%q) = %q, want %q", p, next, w)
		}
		if len(next) != len(p)+1 {
			t.Fatalf("progression grew by %d letters", len(next)-len(p))
		}
		p = next
	}
	if !p.Complete() {
		t.Error("full word not reported complete")
	}
	if _, err := p.Advance(); err != ErrProgressionComplete {
		t.Errorf("advance past full word err = %v, want ErrProgressionComplete", err)
	}
}

func TestProgressionValid(t *testing.T) {
	for _, p := range []Progression{"", "D", "DONK", "DONKEY"} {
		if !p.Valid() {
			t.Errorf("%q reported invalid", p)
		}
	}
	for _, p := range []Progression{"X", "DK", "DONKEYY", "donkey"} {
		if p.Valid() {
			t.Errorf("%q reported valid", p)
		}
	}
}

func TestProgressionLastLetter(t *testing.T) {
	if got := Progression("").LastLetter(); got != "" {
		t.Errorf("LastLetter = %q, want empty", got)
	}
	if got := Progression("DON").LastLetter(); got != "N" {
		t.Errorf("LastLetter = %q, want N", got)
	}
}
