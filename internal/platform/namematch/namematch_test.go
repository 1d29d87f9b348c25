package namematch

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"  Titans  FC  ", "titans fc"},
		{"St. Mary's-United", "st mary'sunited"},
		{"FC_Dynamo,", "fcdynamo"},
		{"", ""},
		{"   ", ""},
		{"TITANS", "titans"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSimilarity_Tiers(t *testing.T) {
	t.Parallel()

	if got := Similarity("Titans", "titans"); got != 1.0 {
		t.Fatalf("case-equal names: got %v, want 1.0", got)
	}
	if got := Similarity("", ""); got != 1.0 {
		t.Fatalf("both empty: got %v, want 1.0", got)
	}
	if got := Similarity("Titans", ""); got != 0.0 {
		t.Fatalf("one-sided empty: got %v, want 0.0", got)
	}
	if got := Similarity("Titans FC", "Titans"); got != 0.8 {
		t.Fatalf("containment: got %v, want 0.8", got)
	}
}

func TestSimilarity_EditDistanceFormula(t *testing.T) {
	t.Parallel()

	// Distance 1 over max length 3.
	got := Similarity("Kat", "Cat")
	want := 1.0 - 1.0/3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Similarity(Kat, Cat) = %v, want %v", got, want)
	}
}

func TestMatch_DefaultThreshold(t *testing.T) {
	t.Parallel()

	if !Match("Titans", "TITANS", 0) {
		t.Fatalf("expected casing variant to match")
	}
	if !Match("Titans FC", "Titans", 0) {
		t.Fatalf("expected containment to clear 0.7")
	}
	if Match("Titans", "Falcons", 0) {
		t.Fatalf("expected unrelated names to miss")
	}
	if Match("Titans FC", "Titans", 0.9) {
		t.Fatalf("expected explicit threshold to be honored")
	}
}

func TestFindBestMatch(t *testing.T) {
	t.Parallel()

	best, ok := FindBestMatch("Titans", []string{"Falcons", "Titans FC", "titans"}, 0)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if best.Name != "titans" || best.Similarity != 1.0 {
		t.Fatalf("unexpected winner: %+v", best)
	}

	if _, ok := FindBestMatch("Titans", nil, 0); ok {
		t.Fatalf("empty candidate list must yield no match")
	}
	if _, ok := FindBestMatch("", []string{"Titans"}, 0); ok {
		t.Fatalf("empty input must yield no match")
	}
	if _, ok := FindBestMatch("Titans", []string{"Falcons"}, 0); ok {
		t.Fatalf("below-threshold candidates must yield no match")
	}
}

func TestFindBestMatch_FirstSeenWinsTies(t *testing.T) {
	t.Parallel()

	// Both candidates normalize to containment score 0.8.
	best, ok := FindBestMatch("Titans", []string{"Titans FC", "Titans SC"}, 0)
	if !ok || best.Name != "Titans FC" {
		t.Fatalf("expected first-seen tie winner, got %+v ok=%v", best, ok)
	}
}

func TestEditDistance_EmptyOperands(t *testing.T) {
	t.Parallel()

	if got := editDistance(nil, []rune("abc")); got != 3 {
		t.Fatalf("distance(\"\", abc) = %d, want 3", got)
	}
	if got := editDistance([]rune("ab"), nil); got != 2 {
		t.Fatalf("distance(ab, \"\") = %d, want 2", got)
	}
}
