package model

import "fmt"

// Stats reports size and density metrics of a model.
type Stats struct {
	States         int
	Features       int
	Languages      int
	OutputEntries  int // length of the flat output table
	EmittingStates int // states completing at least one feature
	MaxOutputs     int // largest number of features completed by one state
}

// EmittingRatio is the share of states that complete at least one feature.
func (s Stats) EmittingRatio() float64 {
	if s.States == 0 {
		return 0
	}
	return float64(s.EmittingStates) / float64(s.States)
}

// Stats computes the model's metrics.
func (m *Model) Stats() Stats {
	stats := Stats{
		States:        m.t.NumStates,
		Features:      m.t.NumFeatures,
		Languages:     m.t.NumLanguages,
		OutputEntries: len(m.t.Output),
	}
	for _, c := range m.t.OutputCount {
		if c == 0 {
			continue
		}
		stats.EmittingStates++
		stats.MaxOutputs = max(stats.MaxOutputs, int(c))
	}
	return stats
}

func (m *Model) String() string {
	return fmt.Sprintf("Model(states=%d,features=%d,languages=%d)",
		m.t.NumStates, m.t.NumFeatures, m.t.NumLanguages)
}
