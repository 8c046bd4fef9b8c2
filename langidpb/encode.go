package langidpb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/npillmayer/langid/model"
)

// Encode serializes m as a LanguageIdentifier message with packed repeated
// scalars, in field order.
func Encode(m *model.Model) []byte {
	t := m.Tables()
	size := 16 + 5*(len(t.Transitions)+len(t.Output)+2*t.NumStates) +
		8*(len(t.LogPrior)+len(t.LogLikelihood))
	b := make([]byte, 0, size)
	b = appendCardinality(b, fieldNumFeats, t.NumFeatures)
	b = appendCardinality(b, fieldNumLangs, t.NumLanguages)
	b = appendCardinality(b, fieldNumStates, t.NumStates)
	b = appendPackedUint32s(b, fieldNextMove, t.Transitions)
	b = appendPackedUint32s(b, fieldOutputC, t.OutputCount)
	b = appendPackedUint32s(b, fieldOutputS, t.OutputStart)
	b = appendPackedUint32s(b, fieldOutput, t.Output)
	b = appendPackedDoubles(b, fieldLogPrior, t.LogPrior)
	b = appendPackedDoubles(b, fieldLogLikely, t.LogLikelihood)
	for _, l := range t.Labels {
		b = protowire.AppendTag(b, fieldClassNames, protowire.BytesType)
		b = protowire.AppendString(b, l)
	}
	return b
}

// n is validated by model.New to fit uint32.
func appendCardinality(b []byte, num protowire.Number, n int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(n))
}

func appendPackedUint32s(b []byte, num protowire.Number, values []uint32) []byte {
	if len(values) == 0 {
		return b
	}
	size := 0
	for _, v := range values {
		size += protowire.SizeVarint(uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(size))
	for _, v := range values {
		b = protowire.AppendVarint(b, uint64(v))
	}
	return b
}

func appendPackedDoubles(b []byte, num protowire.Number, values []float64) []byte {
	if len(values) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(8*len(values)))
	for _, v := range values {
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}
	return b
}
