package langid

// extract runs text through the automaton and leaves the completed
// features with their counts in id.features.
//
// Each byte advances the DFA by one transition and the reached state is
// counted. Features are resolved only afterwards, once per distinct state,
// so that a state visited n times contributes each of its outputs n times
// without walking the output list n times.
func (id *Identifier) extract(text []byte) {
	id.states.Clear()
	id.features.Clear()
	var s uint32
	for _, b := range text {
		s = id.m.Next(s, b)
		id.states.Add(s, 1)
	}
	for state, visits := range id.states.All() {
		for _, f := range id.m.Outputs(state) {
			id.features.Add(f, visits)
		}
	}
}
