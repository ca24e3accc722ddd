package textutil

import (
	"testing"
	"unicode/utf8"
)

func TestStripRepeated(t *testing.T) {
	tests := []struct {
		name    string
		content string
		display string
		want    string
	}{
		{
			name:    "triplicated sort name",
			content: "Rossini, Gioachino, Rossini, Gioachino, Rossini, Gioachino",
			display: "Gioachino Rossini",
			want:    "Rossini, Gioachino",
		},
		{
			name:    "short repeats kept",
			content: "Dal Pierotto,Piero,Dal Piero, Pierotto",
			display: "Dal Pierotto Piero",
			want:    "Dal Pierotto,Piero,Dal Piero, Pierotto",
		},
		{
			name:    "partial duplication",
			content: "Dal Pierotto, Pierotto, Dal Piero, Pierotto, Dal Pierotto, Piero, Dal Pierotto, Pierotto",
			display: "Piero Dal Pierotto",
			want:    "Dal Piero, Pierotto, Dal Pierotto, Pierotto",
		},
		{
			name:    "clean name untouched",
			content: "Beethoven, Ludwig van",
			display: "Ludwig van Beethoven",
			want:    "Beethoven, Ludwig van",
		},
		{
			name:    "shorter than display",
			content: "Bach",
			display: "Johann Sebastian Bach",
			want:    "Bach",
		},
		{
			name:    "empty",
			content: "",
			display: "",
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripRepeated(tt.content, utf8.RuneCountInString(tt.display))
			if got != tt.want {
				t.Fatalf("StripRepeated(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestStripRepeatedIdempotent(t *testing.T) {
	inputs := []string{
		"Rossini, Gioachino, Rossini, Gioachino, Rossini, Gioachino",
		"Dal Pierotto, Pierotto, Dal Piero, Pierotto, Dal Pierotto, Piero, Dal Pierotto, Pierotto",
		"aaaaaaaaaaaaaaaa",
		"abc;abc;abc;abc",
	}
	for _, in := range inputs {
		for _, minLen := range []int{0, 1, 3, 17} {
			once := StripRepeated(in, minLen)
			if twice := StripRepeated(once, minLen); twice != once {
				t.Fatalf("not idempotent for %q/%d: %q then %q", in, minLen, once, twice)
			}
		}
	}
}

func TestStripRepeatedZeroMinLenTerminates(t *testing.T) {
	if got := StripRepeated("aaaa", 0); got != "a" {
		t.Fatalf("expected single rune to remain, got %q", got)
	}
}

func TestTrimSeparators(t *testing.T) {
	if got := TrimSeparators(" ;, Bach, J.S. ,; "); got != "Bach, J.S." {
		t.Fatalf("unexpected trim result %q", got)
	}
}

func TestFoldKey(t *testing.T) {
	a := FoldKey("composer_sort", "Bach,  J.S.", "Mass in B minor")
	b := FoldKey("composer_sort", "BACH, j.s.", "mass in b MINOR")
	if a != b {
		t.Fatalf("expected folded keys to match: %q vs %q", a, b)
	}
	if FoldKey("a", "bc") == FoldKey("ab", "c") {
		t.Fatal("expected part boundaries to be preserved")
	}
}
