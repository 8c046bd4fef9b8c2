package langid

import (
	"errors"
	"maps"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/langid/compile"
	"github.com/npillmayer/langid/model"
)

// compileModel builds a model with the given priors and per-n-gram
// likelihoods, all given as probabilities.
func compileModel(t testing.TB, labels []string, prior []float64, grams map[string][]float64) *model.Model {
	t.Helper()
	logs := func(p []float64) []float64 {
		l := make([]float64, len(p))
		for i := range p {
			l[i] = math.Log(p[i])
		}
		return l
	}
	b, err := compile.New(labels, logs(prior))
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range slices.Sorted(maps.Keys(grams)) {
		if _, err := b.AddFeature([]byte(g), logs(grams[g])); err != nil {
			t.Fatal(err)
		}
	}
	m, err := b.Compile()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func enFrModel(t testing.TB) *model.Model {
	return compileModel(t, []string{"en", "fr"}, []float64{0.5, 0.5},
		map[string][]float64{"ab": {0.9, 0.1}})
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWorkedExample(t *testing.T) {
	m := enFrModel(t)
	if m.NumStates() != 3 {
		t.Fatalf("automaton for \"ab\": got %d states, want 3", m.NumStates())
	}
	id := New(m)
	best := id.Classify([]byte("ab"))
	if best.Language != "en" || !near(best.Confidence, 0.9) {
		t.Fatalf("classify \"ab\": got %v, want en/0.9", best)
	}
	r := id.Rank([]byte("ab"))
	if len(r) != 2 || r[0].Language != "en" || r[1].Language != "fr" ||
		!near(r[0].Confidence, 0.9) || !near(r[1].Confidence, 0.1) {
		t.Fatalf("rank \"ab\": got %v, want [en/0.9 fr/0.1]", r)
	}
}

func TestFeatureCounts(t *testing.T) {
	id := New(enFrModel(t))
	// two occurrences of "ab": 0.81 vs 0.01 before normalization
	best := id.Classify([]byte("ab ab"))
	if want := 0.81 / 0.82; best.Language != "en" || !near(best.Confidence, want) {
		t.Fatalf("got %v, want en/%v", best, want)
	}
	// no feature completes
	best = id.Classify([]byte("ba"))
	if !near(best.Confidence, 0.5) || best.Language != "en" {
		t.Fatalf("got %v, want en/0.5", best)
	}
}

func TestEmptyTextUsesPriors(t *testing.T) {
	m := compileModel(t, []string{"a", "b", "c"}, []float64{0.2, 0.5, 0.3},
		map[string][]float64{"xyz": {0.1, 0.1, 0.8}})
	id := New(m)
	r := id.Rank(nil)
	want := []LanguageConfidence{{"b", 0.5}, {"c", 0.3}, {"a", 0.2}}
	for i := range want {
		if r[i].Language != want[i].Language || !near(r[i].Confidence, want[i].Confidence) {
			t.Fatalf("rank of empty text: got %v, want %v", r, want)
		}
	}
}

func TestImpossibleEverywhereIsUniform(t *testing.T) {
	m := compileModel(t, []string{"a", "b", "c"}, []float64{0.2, 0.5, 0.3},
		map[string][]float64{"q": {0, 0, 0}})
	id := New(m)
	for _, lc := range id.Rank([]byte("q")) {
		if !near(lc.Confidence, 1.0/3) {
			t.Fatalf("got %v, want uniform 1/3", lc)
		}
	}
	if best := id.Classify([]byte("q")); best.Language != "a" {
		t.Fatalf("tie must go to the first class, got %v", best)
	}
}

func TestTiesKeepClassOrder(t *testing.T) {
	m := compileModel(t, []string{"x", "y", "z"}, []float64{0.25, 0.375, 0.375}, nil)
	id := New(m)
	r := id.Rank(nil)
	if got := []string{r[0].Language, r[1].Language, r[2].Language}; !slices.Equal(got, []string{"y", "z", "x"}) {
		t.Fatalf("rank order: got %v, want [y z x]", got)
	}
	if best := id.Classify(nil); best != r[0] {
		t.Fatalf("classify %v differs from rank[0] %v", best, r[0])
	}
}

func TestDistributionProperties(t *testing.T) {
	id := NewDefault()
	texts := []string{
		"",
		"Der schnelle braune Fuchs springt über den faulen Hund.",
		"The quick brown fox jumps over the lazy dog.",
		"Съешь же ещё этих мягких французских булок, да выпей чаю.",
		"\x00\xff\xfe binary \x80 junk",
		"Bu gün hava çox gözəldir və biz parka gedirik.",
	}
	for _, text := range texts {
		r := id.Rank([]byte(text))
		if len(r) != id.Model().NumLanguages() {
			t.Fatalf("%q: %d ranked languages, want %d", text, len(r), id.Model().NumLanguages())
		}
		sum := 0.0
		for i, lc := range r {
			if lc.Confidence < 0 || lc.Confidence > 1 {
				t.Fatalf("%q: confidence out of range: %v", text, lc)
			}
			if i > 0 && lc.Confidence > r[i-1].Confidence {
				t.Fatalf("%q: ranking not monotone at %d: %v", text, i, r)
			}
			sum += lc.Confidence
		}
		if !near(sum, 1) {
			t.Fatalf("%q: confidences sum to %v", text, sum)
		}
		best := id.Classify([]byte(text))
		if best != r[0] {
			t.Fatalf("%q: classify %v differs from rank[0] %v", text, best, r[0])
		}
		if again := id.Classify([]byte(text)); again != best {
			t.Fatalf("%q: classify not deterministic: %v then %v", text, best, again)
		}
	}
}

func TestDefaultModelDistinctiveTrigrams(t *testing.T) {
	id := NewDefault()
	tests := []struct {
		text string
		want string
	}{
		{"the was you", "en"},
		{"und ich cht", "de"},
		{"les des qui", "fr"},
		{"что ого ени", "ru"},
		{"lər əri ilə", "az"},
	}
	for _, tt := range tests {
		if got := id.Classify([]byte(tt.text)); got.Language != tt.want {
			t.Errorf("classify %q: got %v, want %s", tt.text, got, tt.want)
		}
	}
}

func TestSetLanguages(t *testing.T) {
	id := NewDefault()
	if err := id.SetLanguages("nl", "de", "nl"); err != nil {
		t.Fatal(err)
	}
	if got := id.Languages(); !slices.Equal(got, []string{"de", "nl"}) {
		t.Fatalf("active languages: got %v, want [de nl]", got)
	}
	r := id.Rank([]byte("the was you"))
	if len(r) != 2 || !near(r[0].Confidence+r[1].Confidence, 1) {
		t.Fatalf("subset rank: got %v", r)
	}
	err := id.SetLanguages("de", "xx")
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
	if got := id.Languages(); !slices.Equal(got, []string{"de", "nl"}) {
		t.Fatalf("failed SetLanguages changed active set to %v", got)
	}
	if err := id.SetLanguages(); err != nil {
		t.Fatal(err)
	}
	if got := len(id.Languages()); got != id.Model().NumLanguages() {
		t.Fatalf("reset: got %d active languages, want all %d", got, id.Model().NumLanguages())
	}
}

func TestIdentifiersShareModel(t *testing.T) {
	m := enFrModel(t)
	a, b := New(m), New(m)
	if err := a.SetLanguages("fr"); err != nil {
		t.Fatal(err)
	}
	if got := b.Classify([]byte("ab")); got.Language != "en" {
		t.Fatalf("language subset leaked into other identifier: %v", got)
	}
	if got := a.Classify([]byte("ab")); got.Language != "fr" || !near(got.Confidence, 1) {
		t.Fatalf("single active language: got %v, want fr/1", got)
	}
}

func TestClose(t *testing.T) {
	id := New(enFrModel(t))
	if err := id.Close(); err != nil {
		t.Fatal(err)
	}
	if err := id.Close(); err == nil {
		t.Fatalf("second Close should fail")
	}
}

// priorOnlyModel has a single state, no features and the given log priors.
func priorOnlyModel(t *testing.T, labels []string, logPrior []float64) *model.Model {
	t.Helper()
	m, err := model.New(model.Tables{
		NumStates:    1,
		NumLanguages: len(labels),
		Transitions:  make([]uint32, model.AlphabetSize),
		OutputStart:  []uint32{0},
		OutputCount:  []uint32{0},
		LogPrior:     logPrior,
		Labels:       labels,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSoftmaxWithExtremeLogValues(t *testing.T) {
	tests := []struct {
		name  string
		prior []float64
		want  []float64
	}{
		{"far below zero", []float64{-1e4, -1e4 + math.Log(1.0/9)}, []float64{0.9, 0.1}},
		{"near the float limit", []float64{-1e300, -1e300 - 1e290}, []float64{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := New(priorOnlyModel(t, []string{"x", "y"}, tt.prior))
			r := id.Rank([]byte("anything"))
			sum := 0.0
			for i, lc := range r {
				if math.IsNaN(lc.Confidence) {
					t.Fatalf("NaN confidence in %v", r)
				}
				if !near(lc.Confidence, tt.want[i]) {
					t.Fatalf("rank: got %v, want confidences %v", r, tt.want)
				}
				sum += lc.Confidence
			}
			if !near(sum, 1) {
				t.Fatalf("confidences sum to %v", sum)
			}
			if r[0].Language != "x" {
				t.Fatalf("best: got %v, want x", r[0])
			}
		})
	}
}

func TestSoftmaxWithLongRepeatedText(t *testing.T) {
	// log-probabilities reach about -1e5 after 2000 occurrences of "ab"
	m := compileModel(t, []string{"en", "fr"}, []float64{0.5, 0.5},
		map[string][]float64{"ab": {math.Exp(-50), math.Exp(-50 - math.Log(9)/2000)}})
	id := New(m)
	best := id.Classify([]byte(strings.Repeat("ab", 2000)))
	if best.Language != "en" || !near(best.Confidence, 0.9) {
		t.Fatalf("got %v, want en/0.9", best)
	}
}
