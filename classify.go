package langid

import (
	"cmp"
	"math"
	"slices"
)

// Classify returns the most probable active language for text together
// with its posterior probability. If several languages are equally
// probable, the one with the lowest class index wins.
//
// An empty text is classified by the priors alone.
func (id *Identifier) Classify(text []byte) LanguageConfidence {
	id.score(text)
	best := id.active[0]
	for _, c := range id.active[1:] {
		if id.logprob[c] > id.logprob[best] {
			best = c
		}
	}
	return LanguageConfidence{Language: id.m.Label(best), Confidence: id.logprob[best]}
}

// Rank returns every active language with its posterior probability,
// most probable first. Languages with equal probability keep class order,
// so the first entry always equals the result of Classify.
func (id *Identifier) Rank(text []byte) []LanguageConfidence {
	id.score(text)
	ranking := make([]LanguageConfidence, len(id.active))
	for i, c := range id.active {
		ranking[i] = LanguageConfidence{Language: id.m.Label(c), Confidence: id.logprob[c]}
	}
	slices.SortStableFunc(ranking, func(a, b LanguageConfidence) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return ranking
}

// score leaves the posterior of every active class in id.logprob.
func (id *Identifier) score(text []byte) {
	id.extract(text)
	id.logProbabilities()
	id.softmax()
}

// logProbabilities computes log P(c) + Σ n_f · log P(f|c) for the active
// classes.
func (id *Identifier) logProbabilities() {
	prior := id.m.LogPrior()
	for _, c := range id.active {
		id.logprob[c] = prior[c]
	}
	for f, n := range id.features.All() {
		row := id.m.Likelihoods(f)
		weight := float64(n)
		for _, c := range id.active {
			id.logprob[c] += weight * row[c]
		}
	}
}

// softmax turns the log-probabilities of the active classes into a
// distribution. The maximum is subtracted before exponentiation to avoid
// underflow. If no class has a finite log-probability the distribution is
// uniform.
func (id *Identifier) softmax() {
	top := math.Inf(-1)
	for _, c := range id.active {
		top = max(top, id.logprob[c])
	}
	if math.IsInf(top, -1) {
		u := 1 / float64(len(id.active))
		for _, c := range id.active {
			id.logprob[c] = u
		}
		return
	}
	sum := 0.0
	for _, c := range id.active {
		p := math.Exp(id.logprob[c] - top)
		id.logprob[c] = p
		sum += p
	}
	for _, c := range id.active {
		id.logprob[c] /= sum
	}
}
