package langid

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/npillmayer/langid/builtin"
)

func sampleTexts(n int) [][]byte {
	words := []string{"the was you", "und ich cht", "les des qui", "что ого ени", "lər əri ilə", ""}
	texts := make([][]byte, n)
	for i := range texts {
		texts[i] = []byte(fmt.Sprintf("%s %d", words[i%len(words)], i))
	}
	return texts
}

func TestPoolMatchesIdentifier(t *testing.T) {
	p, err := NewPool(builtin.Model())
	if err != nil {
		t.Fatal(err)
	}
	id := NewDefault()
	texts := sampleTexts(60)
	got, err := p.ClassifyAll(context.Background(), texts, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, text := range texts {
		if want := id.Classify(text); got[i] != want {
			t.Fatalf("text %d: pool got %v, want %v", i, got[i], want)
		}
	}
}

func TestPoolConcurrentUse(t *testing.T) {
	p, err := NewPool(builtin.Model(), "de", "en")
	if err != nil {
		t.Fatal(err)
	}
	id := NewDefault()
	if err := id.SetLanguages("de", "en"); err != nil {
		t.Fatal(err)
	}
	texts := sampleTexts(16)
	want := make([][]LanguageConfidence, len(texts))
	for i, text := range texts {
		want[i] = id.Rank(text)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, text := range texts {
				r := p.Rank(text)
				if len(r) != 2 || r[0] != want[i][0] || r[1] != want[i][1] {
					errs <- fmt.Errorf("text %d: got %v, want %v", i, r, want[i])
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestPoolUnknownLanguage(t *testing.T) {
	if _, err := NewPool(builtin.Model(), "en", "tlh"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestClassifyAllCancelled(t *testing.T) {
	p, err := NewPool(builtin.Model())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := p.ClassifyAll(ctx, sampleTexts(10), 2)
	if !errors.Is(err, context.Canceled) || results != nil {
		t.Fatalf("cancelled batch: got results=%v err=%v", results, err)
	}
	results, err = p.ClassifyAll(context.Background(), nil, 2)
	if err != nil || len(results) != 0 {
		t.Fatalf("empty batch: got results=%v err=%v", results, err)
	}
}
