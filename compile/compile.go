// Package compile builds language models from byte n-gram features.
//
// The n-grams are collected in a trie and compiled into a total
// Aho-Corasick automaton over the byte alphabet: goto edges come from the
// trie, missing edges are resolved through failure links, and every state
// completes the features of its own n-gram plus those of its failure state.
// The resulting transition and output tables are exactly what the tokenizer
// of package langid drives.
//
// Compile does not estimate probabilities. Priors and per-feature
// likelihoods are supplied by the caller, already in natural-log space.
package compile

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/langid/model"
)

// tracer writes to trace with key 'langid'
func tracer() tracing.Trace {
	return tracing.Select("langid")
}

const (
	terminator   = rune(0) // trie marks the end of a key with a child of this rune
	symbolOffset = 1       // byte b is stored as rune b+1, clear of terminator
)

// Builder collects features until Compile is called.
type Builder struct {
	labels   []string
	logPrior []float64
	grams    *trie.Trie
	rows     [][]float64 // log-likelihood row per feature id
}

// New starts a model for the given classes.
func New(labels []string, logPrior []float64) (*Builder, error) {
	if len(labels) == 0 {
		return nil, errors.New("compile: no language classes")
	}
	if len(labels) != len(logPrior) {
		return nil, fmt.Errorf("compile: %d labels but %d priors", len(labels), len(logPrior))
	}
	return &Builder{
		labels:   slices.Clone(labels),
		logPrior: slices.Clone(logPrior),
		grams:    trie.New(),
	}, nil
}

// AddFeature registers byte n-gram gram with log P(gram|class) for every
// class and returns its feature id. Ids are assigned in call order.
func (b *Builder) AddFeature(gram []byte, logLikelihood []float64) (uint32, error) {
	if len(gram) == 0 {
		return 0, errors.New("compile: empty n-gram")
	}
	if len(logLikelihood) != len(b.labels) {
		return 0, fmt.Errorf("compile: n-gram %q has %d likelihoods, want %d",
			gram, len(logLikelihood), len(b.labels))
	}
	key := encodeKey(gram)
	if _, dup := b.grams.Find(key); dup {
		return 0, fmt.Errorf("compile: duplicate n-gram %q", gram)
	}
	id, err := safecast.Conv[uint32](len(b.rows))
	if err != nil {
		return 0, fmt.Errorf("compile: too many features: %w", err)
	}
	b.grams.Add(key, id)
	b.rows = append(b.rows, slices.Clone(logLikelihood))
	return id, nil
}

// Compile freezes the collected features into a validated model.
func (b *Builder) Compile() (*model.Model, error) {
	nodes := []*trie.Node{b.grams.Root()}
	fail := []uint32{0}
	outputs := [][]uint32{nil}
	trans := make([]uint32, 0, model.AlphabetSize*(len(b.rows)+1))
	for q := 0; q < len(nodes); q++ {
		row := make([]uint32, model.AlphabetSize)
		if q > 0 {
			f := int(fail[q]) * model.AlphabetSize // fail[q] < q, its row is final
			copy(row, trans[f:f+model.AlphabetSize])
		}
		children := nodes[q].Children()
		for _, r := range sortedSymbols(children) {
			child := children[r]
			c := byte(r - symbolOffset)
			id, err := safecast.Conv[uint32](len(nodes))
			if err != nil {
				return nil, fmt.Errorf("compile: automaton too large: %w", err)
			}
			f := row[c] // δ(fail(q), c); 0 below the root
			nodes = append(nodes, child)
			fail = append(fail, f)
			outputs = append(outputs, append(ownFeature(child), outputs[f]...))
			row[c] = id
		}
		trans = append(trans, row...)
	}
	t := model.Tables{
		NumStates:     len(nodes),
		NumFeatures:   len(b.rows),
		NumLanguages:  len(b.labels),
		Transitions:   trans,
		OutputStart:   make([]uint32, len(nodes)),
		OutputCount:   make([]uint32, len(nodes)),
		LogPrior:      b.logPrior,
		LogLikelihood: make([]float64, 0, len(b.rows)*len(b.labels)),
		Labels:        b.labels,
	}
	for s, out := range outputs {
		start, err := safecast.Conv[uint32](len(t.Output))
		if err != nil {
			return nil, fmt.Errorf("compile: output table too large: %w", err)
		}
		t.OutputStart[s] = start
		t.OutputCount[s] = uint32(len(out)) // bounded by the number of features
		t.Output = append(t.Output, out...)
	}
	for _, row := range b.rows {
		t.LogLikelihood = append(t.LogLikelihood, row...)
	}
	m, err := model.New(t)
	if err != nil {
		return nil, err
	}
	stats := m.Stats()
	tracer().Infof("compiled automaton states=%d features=%d emitting=%.2f maxOutputs=%d",
		stats.States, stats.Features, stats.EmittingRatio(), stats.MaxOutputs)
	return m, nil
}

// ownFeature returns the feature whose n-gram ends exactly at node, if any.
func ownFeature(node *trie.Node) []uint32 {
	leaf, ok := node.Children()[terminator]
	if !ok {
		return nil
	}
	if id, ok := leaf.Meta().(uint32); ok {
		return []uint32{id}
	}
	return nil
}

func sortedSymbols(children map[rune]*trie.Node) []rune {
	symbols := make([]rune, 0, len(children))
	for r := range children {
		if r == terminator {
			continue
		}
		symbols = append(symbols, r)
	}
	slices.Sort(symbols)
	return symbols
}

func encodeKey(gram []byte) string {
	key := make([]rune, len(gram))
	for i, c := range gram {
		key[i] = rune(c) + symbolOffset
	}
	return string(key)
}
