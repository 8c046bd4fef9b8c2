/*
Package langid identifies the natural language of a text.

The approach is the one of langid.py by Marco Lui and Timothy Baldwin: a
text is scanned byte by byte with a deterministic finite automaton whose
states complete byte n-gram features, the features are counted, and a
multinomial Naive Bayes model turns the counts into a posterior
distribution over the model's languages.

An Identifier owns the per-call scratch state and is not safe for
concurrent use. The underlying model.Model is immutable and can be shared;
Pool hands out one Identifier per goroutine.

	id := langid.NewDefault()
	best := id.Classify([]byte("the quick brown fox"))   // {Language:"en" ...}

Models are loaded from the protocol buffer format of langid.c or from the
msgpack format of package langidmp, see LoadModel.

Further Reading

	https://github.com/saffsd/langid.py
	https://github.com/saffsd/langid.c
	Lui & Baldwin: langid.py: An Off-the-shelf Language Identification Tool (ACL 2012)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package langid

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'langid'
func tracer() tracing.Trace {
	return tracing.Select("langid")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
