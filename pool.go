package langid

import (
	"context"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/npillmayer/langid/model"
)

// Pool classifies texts concurrently against one shared model. Each
// goroutine borrows its own Identifier, so a Pool is safe for concurrent
// use.
type Pool struct {
	m      *model.Model
	active []int
	idents sync.Pool
}

// NewPool creates a Pool for m, restricted to the given languages. Without
// labels all languages of m are active.
func NewPool(m *model.Model, labels ...string) (*Pool, error) {
	assert(m != nil, "langid: nil model")
	active, err := classesOf(m, labels)
	if err != nil {
		return nil, err
	}
	p := &Pool{m: m, active: active}
	p.idents.New = func() any {
		id := New(p.m)
		id.active = slices.Clone(p.active)
		return id
	}
	return p, nil
}

// Model returns the shared model.
func (p *Pool) Model() *model.Model {
	return p.m
}

// Classify is Identifier.Classify on a borrowed Identifier.
func (p *Pool) Classify(text []byte) LanguageConfidence {
	id := p.idents.Get().(*Identifier)
	defer p.idents.Put(id)
	return id.Classify(text)
}

// Rank is Identifier.Rank on a borrowed Identifier.
func (p *Pool) Rank(text []byte) []LanguageConfidence {
	id := p.idents.Get().(*Identifier)
	defer p.idents.Put(id)
	return id.Rank(text)
}

// ClassifyAll classifies texts with at most jobs goroutines and returns the
// results in input order. jobs <= 0 means GOMAXPROCS. If ctx is cancelled
// before all texts are classified, ClassifyAll returns the context error and
// no results.
func (p *Pool) ClassifyAll(ctx context.Context, texts [][]byte, jobs int) ([]LanguageConfidence, error) {
	if len(texts) == 0 {
		return nil, ctx.Err()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]LanguageConfidence, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(texts)))
	for i := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Classify(texts[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
