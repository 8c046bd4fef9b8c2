// Package model holds the immutable tables of a byte n-gram Naive Bayes
// language identification model.
//
// - States are indices into the transition table (0 is the initial state).
// - Transition: next := Transitions[state<<8 | b]; the automaton is total,
// every byte has a successor from every state.
// - Entering a state completes the features Output[OutputStart[s] : OutputStart[s]+OutputCount[s]].
// - LogLikelihood is a NumFeatures × NumLanguages matrix, row-major by feature.
//
// A Model is created once by New and never mutated afterwards, so it may be
// shared between any number of goroutines.
package model

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// AlphabetSize is the number of input symbols of the automaton (one per byte value).
const AlphabetSize = 256

// ErrInvalidModel is wrapped by every validation failure of New.
var ErrInvalidModel = errors.New("invalid language model")

// tracer writes to trace with key 'langid'
func tracer() tracing.Trace {
	return tracing.Select("langid")
}

// Tables is the raw, unvalidated form of a model as produced by decoders and
// the compiler.
type Tables struct {
	NumStates    int
	NumFeatures  int
	NumLanguages int

	// Transitions has NumStates*AlphabetSize entries.
	Transitions []uint32

	// OutputStart and OutputCount have NumStates entries each and select
	// ranges of Output.
	OutputStart []uint32
	OutputCount []uint32
	Output      []uint32 // feature ids

	LogPrior      []float64 // log P(class), NumLanguages entries
	LogLikelihood []float64 // log P(feature|class), NumFeatures*NumLanguages entries

	Labels []string // class labels, e.g. "en"
}

// Model is a validated, read-only language model.
type Model struct {
	t     Tables
	index map[string]int // label -> class
}

// New validates t and wraps it into a Model. New takes ownership of the
// slices in t; callers must not modify them afterwards.
func New(t Tables) (*Model, error) {
	if err := validate(&t); err != nil {
		return nil, err
	}
	m := &Model{
		t:     t,
		index: make(map[string]int, len(t.Labels)),
	}
	for i, l := range t.Labels {
		m.index[l] = i
	}
	tracer().Debugf("model: %d states, %d features, %d languages",
		t.NumStates, t.NumFeatures, t.NumLanguages)
	return m, nil
}

// NumStates returns the number of automaton states.
func (m *Model) NumStates() int { return m.t.NumStates }

// NumFeatures returns the number of features.
func (m *Model) NumFeatures() int { return m.t.NumFeatures }

// NumLanguages returns the number of language classes.
func (m *Model) NumLanguages() int { return m.t.NumLanguages }

// Next returns the successor of state for input byte b.
func (m *Model) Next(state uint32, b byte) uint32 {
	return m.t.Transitions[int(state)<<8|int(b)]
}

// Outputs returns the feature ids completed by entering state.
// The returned slice must not be modified.
func (m *Model) Outputs(state uint32) []uint32 {
	start := m.t.OutputStart[state]
	return m.t.Output[start : start+m.t.OutputCount[state]]
}

// Likelihoods returns log P(feature|class) for every class, in class order.
// The returned slice must not be modified.
func (m *Model) Likelihoods(feature uint32) []float64 {
	row := int(feature) * m.t.NumLanguages
	return m.t.LogLikelihood[row : row+m.t.NumLanguages]
}

// LogPrior returns log P(class) for every class.
// The returned slice must not be modified.
func (m *Model) LogPrior() []float64 { return m.t.LogPrior }

// Label returns the label of class c.
func (m *Model) Label(c int) string { return m.t.Labels[c] }

// Labels returns a copy of all class labels in class order.
func (m *Model) Labels() []string {
	return append([]string(nil), m.t.Labels...)
}

// ClassIndex returns the class of label.
func (m *Model) ClassIndex(label string) (int, bool) {
	c, ok := m.index[label]
	return c, ok
}

// Tables returns the raw tables, e.g. for encoding the model.
// The slices are shared with the model and must not be modified.
func (m *Model) Tables() Tables { return m.t }
