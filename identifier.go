package langid

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/langid/builtin"
	"github.com/npillmayer/langid/model"
	"github.com/npillmayer/langid/sparse"
)

// ErrUnknownLanguage is returned when a language label is not a class of
// the model.
var ErrUnknownLanguage = errors.New("langid: unknown language")

// LanguageConfidence is a language label together with its posterior
// probability for a given text.
type LanguageConfidence struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Identifier classifies texts against a model.
//
// An Identifier keeps scratch buffers between calls and must not be used by
// more than one goroutine at a time.
type Identifier struct {
	m        *model.Model
	states   *sparse.Set // visited DFA states with visit counts
	features *sparse.Set // completed features with occurrence counts
	logprob  []float64   // per class, indexed by class id
	active   []int       // ascending class ids taking part in scoring
}

// New creates an Identifier for m. m may be shared by any number of
// Identifiers.
func New(m *model.Model) *Identifier {
	assert(m != nil, "langid: nil model")
	id := &Identifier{
		m:        m,
		states:   sparse.New(m.NumStates()),
		features: sparse.New(m.NumFeatures()),
		logprob:  make([]float64, m.NumLanguages()),
	}
	id.active = allClasses(m)
	return id
}

// NewDefault creates an Identifier for the compiled-in model of package
// builtin.
func NewDefault() *Identifier {
	return New(builtin.Model())
}

// Close releases the scratch buffers. The model is left untouched, as other
// Identifiers may share it. An Identifier must not be used after Close.
func (id *Identifier) Close() error {
	if id.m == nil {
		return errors.New("langid: identifier already closed")
	}
	id.m, id.states, id.features = nil, nil, nil
	id.logprob, id.active = nil, nil
	return nil
}

// Model returns the model id classifies against.
func (id *Identifier) Model() *model.Model {
	return id.m
}

// SetLanguages restricts classification to the languages given by label.
// Calling it without arguments makes all languages of the model active
// again. If any label is unknown, ErrUnknownLanguage is returned and the
// active set is left unchanged.
func (id *Identifier) SetLanguages(labels ...string) error {
	active, err := classesOf(id.m, labels)
	if err != nil {
		return err
	}
	id.active = active
	return nil
}

// Languages returns the labels of the active languages in class order.
func (id *Identifier) Languages() []string {
	labels := make([]string, len(id.active))
	for i, c := range id.active {
		labels[i] = id.m.Label(c)
	}
	return labels
}

func allClasses(m *model.Model) []int {
	all := make([]int, m.NumLanguages())
	for c := range all {
		all[c] = c
	}
	return all
}

// classesOf maps labels to sorted, de-duplicated class ids. No labels means
// every class.
func classesOf(m *model.Model, labels []string) ([]int, error) {
	if len(labels) == 0 {
		return allClasses(m), nil
	}
	classes := make([]int, 0, len(labels))
	for _, l := range labels {
		c, ok := m.ClassIndex(l)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, l)
		}
		classes = append(classes, c)
	}
	slices.Sort(classes)
	return slices.Compact(classes), nil
}
