package model

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidModel, fmt.Sprintf(format, args...))
}

// validate checks declared cardinalities against the actual tables, once.
// Everything the tokenizer and the classifier index afterwards is covered
// here.
func validate(t *Tables) error {
	nstates, err := safecast.Conv[uint32](t.NumStates)
	if err != nil || nstates == 0 {
		return invalid("state count %d", t.NumStates)
	}
	nfeats, err := safecast.Conv[uint32](t.NumFeatures)
	if err != nil {
		return invalid("feature count %d", t.NumFeatures)
	}
	if _, err = safecast.Conv[uint32](t.NumLanguages); err != nil || t.NumLanguages == 0 {
		return invalid("language count %d", t.NumLanguages)
	}
	if want := t.NumStates * AlphabetSize; len(t.Transitions) != want {
		return invalid("transition table has %d entries, want %d", len(t.Transitions), want)
	}
	for i, s := range t.Transitions {
		if s >= nstates {
			return invalid("transition %d leads to state %d of %d", i, s, nstates)
		}
	}
	if len(t.OutputStart) != t.NumStates || len(t.OutputCount) != t.NumStates {
		return invalid("output ranges cover %d/%d states, want %d",
			len(t.OutputStart), len(t.OutputCount), t.NumStates)
	}
	for s := range t.OutputStart {
		end := uint64(t.OutputStart[s]) + uint64(t.OutputCount[s])
		if end > uint64(len(t.Output)) {
			return invalid("output range of state %d ends at %d, table has %d entries", s, end, len(t.Output))
		}
	}
	for i, f := range t.Output {
		if f >= nfeats {
			return invalid("output entry %d references feature %d of %d", i, f, nfeats)
		}
	}
	if len(t.LogPrior) != t.NumLanguages {
		return invalid("%d priors for %d languages", len(t.LogPrior), t.NumLanguages)
	}
	if want := t.NumFeatures * t.NumLanguages; len(t.LogLikelihood) != want {
		return invalid("likelihood matrix has %d entries, want %d", len(t.LogLikelihood), want)
	}
	if i, ok := firstBadLogValue(t.LogPrior); !ok {
		return invalid("prior %d is %v", i, t.LogPrior[i])
	}
	if i, ok := firstBadLogValue(t.LogLikelihood); !ok {
		return invalid("likelihood %d is %v", i, t.LogLikelihood[i])
	}
	if len(t.Labels) != t.NumLanguages {
		return invalid("%d labels for %d languages", len(t.Labels), t.NumLanguages)
	}
	seen := make(map[string]struct{}, len(t.Labels))
	for i, l := range t.Labels {
		if l == "" {
			return invalid("label of class %d is empty", i)
		}
		if _, dup := seen[l]; dup {
			return invalid("duplicate label %q", l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// firstBadLogValue finds NaN or +Inf entries. -Inf is log(0) and allowed.
func firstBadLogValue(values []float64) (int, bool) {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 1) {
			return i, false
		}
	}
	return 0, true
}
