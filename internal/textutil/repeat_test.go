package textutil

import (
	"math/rand"
	"strings"
	"testing"
)

func TestLongestRepeat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", ""},
		{"abc", ""},
		{"aa", "a"},
		{"aaa", "a"},
		{"aaaa", "aa"},
		{"banana", "an"},
		{"BCD,BBB,ABCD,BBB,BBB,", "BCD,BBB,"},
		{"Dal Pierotto,Piero,Dal Piero, Pierotto", "Dal Piero"},
		{"Dvořák, Antonín, Dvořák, Antonín", "Dvořák, Antonín"},
	}
	for _, tt := range tests {
		if got := LongestRepeat(tt.in); got != tt.want {
			t.Errorf("LongestRepeat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// bruteLongestRepeat scans lengths from longest to shortest and starts from
// left to right, so the first hit is the longest, leftmost repeat.
func bruteLongestRepeat(s string) string {
	runes := []rune(s)
	n := len(runes)
	for length := n / 2; length >= 1; length-- {
		for i := 0; i+length <= n; i++ {
			for j := i + length; j+length <= n; j++ {
				if string(runes[i:i+length]) == string(runes[j:j+length]) {
					return string(runes[i : i+length])
				}
			}
		}
	}
	return ""
}

func TestLongestRepeatMatchesBruteForceExhaustive(t *testing.T) {
	alphabet := []rune("ab,")
	var walk func(prefix []rune, depth int)
	walk = func(prefix []rune, depth int) {
		s := string(prefix)
		if got, want := LongestRepeat(s), bruteLongestRepeat(s); got != want {
			t.Fatalf("LongestRepeat(%q) = %q, brute force %q", s, got, want)
		}
		if depth == 0 {
			return
		}
		for _, r := range alphabet {
			walk(append(prefix, r), depth-1)
		}
	}
	walk(make([]rune, 0, 9), 9)
}

func TestLongestRepeatMatchesBruteForceRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcd ,")
	for n := 0; n < 500; n++ {
		length := rng.Intn(40)
		var b strings.Builder
		for i := 0; i < length; i++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		s := b.String()
		if got, want := LongestRepeat(s), bruteLongestRepeat(s); got != want {
			t.Fatalf("LongestRepeat(%q) = %q, brute force %q", s, got, want)
		}
	}
}

func TestLongestRepeatResultOccursTwiceWithoutOverlap(t *testing.T) {
	for _, s := range []string{"banana", "mississippi", "abcabcabc", "Rossini, Gioachino, Rossini, Gioachino"} {
		got := LongestRepeat(s)
		if got == "" {
			t.Fatalf("expected a repeat in %q", s)
		}
		first := strings.Index(s, got)
		if strings.Index(s[first+len(got):], got) < 0 {
			t.Fatalf("repeat %q of %q has no non-overlapping second occurrence", got, s)
		}
	}
}
